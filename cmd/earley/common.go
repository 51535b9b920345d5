package main

import (
	"fmt"
	"strings"

	"github.com/JosephPotashnik/EarleyParser/chart"
	"github.com/JosephPotashnik/EarleyParser/grammar"
	"github.com/JosephPotashnik/EarleyParser/grammarsrc"
	"github.com/JosephPotashnik/EarleyParser/pos"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

// loadGrammarAndVocab loads the vocabulary first so its POS tags can seed
// pos.Set before the grammar's rules are rewritten against it (spec.md
// §5: the PartsOfSpeech set must be injected before any Grammar exists).
func loadGrammarAndVocab(grammarPath, vocabPath string) (*grammar.Grammar, *vocab.Vocabulary, error) {
	v, err := vocab.Load(vocabPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load vocabulary: %w", err)
	}
	pos.Set(v.Tags()...)

	rules, err := grammarsrc.Load(grammarPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load grammar: %w", err)
	}
	g, err := grammar.New(rules, pos.IsPartOfSpeech)
	if err != nil {
		return nil, nil, fmt.Errorf("build grammar: %w", err)
	}
	return g, v, nil
}

func parserOptions(maxCompleted int) chart.Options {
	return chart.Options{MaxCompleted: maxCompleted}
}

func newChartParser(g *grammar.Grammar, v *vocab.Vocabulary, sentence []string, maxCompleted int) *chart.Parser {
	return chart.NewParser(g, v, sentence, 0, parserOptions(maxCompleted))
}

func joinArgs(sentence []string) string {
	return strings.Join(sentence, " ")
}

func splitSentence(s string) []string {
	return strings.Fields(s)
}
