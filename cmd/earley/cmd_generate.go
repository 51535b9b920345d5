package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JosephPotashnik/EarleyParser/chart"
	"github.com/JosephPotashnik/EarleyParser/grammar"
	"github.com/JosephPotashnik/EarleyParser/grammarsrc"
	"github.com/JosephPotashnik/EarleyParser/pos"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

func newGenerateCmd() *cobra.Command {
	var maxWords int
	var maxCompleted int
	var vocabPath string
	var posTags []string

	cmd := &cobra.Command{
		Use:   "generate <grammar> [--max-words N]",
		Short: "Run generator mode and print the generated part-of-speech yields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v *vocab.Vocabulary
			switch {
			case vocabPath != "":
				loaded, err := vocab.Load(vocabPath)
				if err != nil {
					return fmt.Errorf("load vocabulary: %w", err)
				}
				v = loaded
				pos.Set(v.Tags()...)
			case len(posTags) > 0:
				pos.Set(posTags...)
			default:
				return fmt.Errorf("generate needs the part-of-speech set: pass --pos or --vocab")
			}

			rules, err := grammarsrc.Load(args[0])
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}
			g, err := grammar.New(rules, pos.IsPartOfSpeech)
			if err != nil {
				return fmt.Errorf("build grammar: %w", err)
			}

			p := chart.NewParser(g, vocab.New(), nil, maxWords, parserOptions(maxCompleted))
			accepted, _, err := p.GenerateSentence()
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			if !accepted {
				fmt.Println("no derivation within max-words")
				return nil
			}

			for _, yield := range p.FormattedStrings(0, true) {
				fmt.Println(yield)
				if v != nil {
					reportBigramMisses(v, yield)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxWords, "max-words", 8, "maximum sentence length to generate")
	cmd.Flags().IntVar(&maxCompleted, "max-completed", 0, "per-column completed-state cap (0 uses the default)")
	cmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary file; also seeds the part-of-speech set and enables bigram-miss reporting")
	cmd.Flags().StringArrayVar(&posTags, "pos", nil, "part-of-speech tag to generate with; repeatable, ignored if --vocab is set")

	return cmd
}

// reportBigramMisses warns, per consecutive POS pair in yield, when either
// tag has no attested surface form in v: a generated bigram the loaded
// vocabulary never licenses (spec.md §7's vocabulary-miss condition,
// reported rather than treated as fatal since chart has no bigram model
// to rank against).
func reportBigramMisses(v *vocab.Vocabulary, yield string) {
	tags := strings.Fields(yield)
	for i := 0; i+1 < len(tags); i++ {
		a, b := tags[i], tags[i+1]
		if len(v.WordsFor(a)) == 0 || len(v.WordsFor(b)) == 0 {
			fmt.Printf("  warning: vocabulary miss in bigram %s %s\n", a, b)
		}
	}
}
