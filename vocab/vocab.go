// Package vocab loads the vocabulary JSON format described in spec.md §6:
// a single required property "POSWithPossibleWords" mapping POS tag to an
// array of lowercase surface forms. It also builds and serves the inverse
// map (surface word -> possible POS tags) in memory.
package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Vocabulary holds both directions of the surface-word/POS-tag mapping.
type Vocabulary struct {
	posToWords map[string][]string
	wordToPOS  map[string][]string
}

type jsonVocabulary struct {
	POSWithPossibleWords map[string][]string `json:"POSWithPossibleWords"`
}

// New returns an empty Vocabulary, ready for programmatic Add calls (tests
// build vocabularies this way without a JSON file on disk).
func New() *Vocabulary {
	return &Vocabulary{
		posToWords: map[string][]string{},
		wordToPOS:  map[string][]string{},
	}
}

// Load reads and parses a vocabulary JSON file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: read %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("vocab: %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes vocabulary JSON from an in-memory byte slice.
func Parse(data []byte) (*Vocabulary, error) {
	var jv jsonVocabulary
	if err := json.Unmarshal(data, &jv); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if jv.POSWithPossibleWords == nil {
		return nil, fmt.Errorf("parse: missing required property POSWithPossibleWords")
	}

	v := New()
	for tag, words := range jv.POSWithPossibleWords {
		for _, w := range words {
			v.Add(w, tag)
		}
	}
	return v, nil
}

// Add records that word may be tagged pos, in both directions.
func (v *Vocabulary) Add(word, pos string) {
	word = strings.ToLower(word)
	if !contains(v.posToWords[pos], word) {
		v.posToWords[pos] = append(v.posToWords[pos], word)
	}
	if !contains(v.wordToPOS[word], pos) {
		v.wordToPOS[word] = append(v.wordToPOS[word], pos)
	}
}

// POSFor returns the possible POS tags for word (WordWithPossiblePOS in
// spec.md §6), or nil if word is out of vocabulary.
func (v *Vocabulary) POSFor(word string) []string {
	return v.wordToPOS[strings.ToLower(word)]
}

// WordsFor returns the possible surface forms for pos
// (POSWithPossibleWords), or nil.
func (v *Vocabulary) WordsFor(pos string) []string {
	return v.posToWords[pos]
}

// IsKnown reports whether word has at least one possible POS tag.
func (v *Vocabulary) IsKnown(word string) bool {
	return len(v.POSFor(word)) > 0
}

// Tags returns every POS tag this vocabulary assigns at least one word to,
// sorted. Callers use it to seed pos.Set before building a Grammar, since
// the vocabulary file is the only place those tags are declared.
func (v *Vocabulary) Tags() []string {
	out := make([]string, 0, len(v.posToWords))
	for tag := range v.posToWords {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the vocabulary back to the POSWithPossibleWords
// shape, with each word list sorted for deterministic output.
func (v *Vocabulary) MarshalJSON() ([]byte, error) {
	out := jsonVocabulary{POSWithPossibleWords: make(map[string][]string, len(v.posToWords))}
	for tag, words := range v.posToWords {
		sorted := append([]string(nil), words...)
		sort.Strings(sorted)
		out.POSWithPossibleWords[tag] = sorted
	}
	return json.MarshalIndent(out, "", "  ")
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
