package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JosephPotashnik/EarleyParser/diagnostics"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

func newLSPCmd() *cobra.Command {
	var vocabPath string
	var smokeSentencePaths []string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol diagnostics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var v *vocab.Vocabulary
			if vocabPath != "" {
				loaded, err := vocab.Load(vocabPath)
				if err != nil {
					return fmt.Errorf("load vocabulary: %w", err)
				}
				v = loaded
			}

			var sentences [][]string
			for _, s := range smokeSentencePaths {
				sentences = append(sentences, splitSentence(s))
			}

			server := diagnostics.NewServer("0.1.0", v, sentences)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary file used for smoke-parse diagnostics (optional)")
	cmd.Flags().StringArrayVar(&smokeSentencePaths, "smoke-sentence", nil, "held-out sentence to smoke-parse on every edit; repeatable")

	return cmd
}
