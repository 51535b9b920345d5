package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnumerateCmd() *cobra.Command {
	var maxCompleted int
	var posYield bool
	var column int

	cmd := &cobra.Command{
		Use:   "enumerate <grammar> <vocab> <sentence...>",
		Short: "Print formatted_strings() for a sentence",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, v, err := loadGrammarAndVocab(args[0], args[1])
			if err != nil {
				return err
			}
			p := newChartParser(g, v, args[2:], maxCompleted)
			p.ParseSentence()

			for _, s := range p.FormattedStrings(column, posYield) {
				fmt.Println(s)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCompleted, "max-completed", 0, "per-column completed-state cap (0 uses the default)")
	cmd.Flags().BoolVar(&posYield, "pos-yield", false, "print the bare part-of-speech yield instead of a bracketed tree")
	cmd.Flags().IntVar(&column, "column", 0, "start column of the span to enumerate")

	return cmd
}
