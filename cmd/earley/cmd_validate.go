package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JosephPotashnik/EarleyParser/grammar"
	"github.com/JosephPotashnik/EarleyParser/grammarsrc"
	"github.com/JosephPotashnik/EarleyParser/pos"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

func newValidateCmd() *cobra.Command {
	var vocabPath string
	var printRewritten bool

	cmd := &cobra.Command{
		Use:   "validate <grammar>",
		Short: "Load a grammar file and report format errors without parsing any input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vocabPath != "" {
				v, err := vocab.Load(vocabPath)
				if err != nil {
					return fmt.Errorf("load vocabulary: %w", err)
				}
				pos.Set(v.Tags()...)
			}

			rules, err := grammarsrc.Load(args[0])
			if err != nil {
				fmt.Println(err)
				return err
			}

			g, err := grammar.New(rules, pos.IsPartOfSpeech)
			if err != nil {
				fmt.Println(err)
				return err
			}

			for _, lhs := range g.Unreachable() {
				fmt.Printf("warning: %s is unreachable from START\n", lhs)
			}

			fmt.Println("ok")
			if printRewritten {
				fmt.Print(g.Format())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary file used to seed the part-of-speech set (optional)")
	cmd.Flags().BoolVar(&printRewritten, "print-rewritten", false, "also print the renamed/POS-assigned grammar actually used for parsing")

	return cmd
}
