package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "earley",
		Short: "An Earley chart parser and generator",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCountCmd())
	rootCmd.AddCommand(newEnumerateCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
