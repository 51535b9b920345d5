package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var maxCompleted int

	cmd := &cobra.Command{
		Use:   "parse <grammar> <vocab> <sentence...>",
		Short: "Parse a sentence against a grammar/vocabulary pair",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, v, err := loadGrammarAndVocab(args[0], args[1])
			if err != nil {
				return err
			}
			sentence := args[2:]

			p := newChartParser(g, v, sentence, maxCompleted)
			accepted, indicator := p.ParseSentence()
			if !accepted {
				fmt.Printf("rejected: %s\n", joinArgs(sentence))
				return nil
			}
			fmt.Printf("accepted: %s\n", joinArgs(sentence))
			fmt.Printf("derivation_indicator: %d\n", indicator)
			fmt.Printf("count_derivations: %d\n", p.CountDerivations())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCompleted, "max-completed", 0, "per-column completed-state cap (0 uses the default)")

	return cmd
}
