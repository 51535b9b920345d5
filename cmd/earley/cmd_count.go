package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	var maxCompleted int

	cmd := &cobra.Command{
		Use:   "count <grammar> <vocab> <sentence...>",
		Short: "Print count_derivations() for a sentence",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, v, err := loadGrammarAndVocab(args[0], args[1])
			if err != nil {
				return err
			}
			p := newChartParser(g, v, args[2:], maxCompleted)
			p.ParseSentence()
			fmt.Println(p.CountDerivations())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCompleted, "max-completed", 0, "per-column completed-state cap (0 uses the default)")

	return cmd
}
