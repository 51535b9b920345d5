// Package pos holds the process-wide injected configuration spec.md §5
// describes: the set of part-of-speech identifiers and the ScannedRules
// table keyed by POS tag. Both must be populated before any Grammar or
// Parser is constructed, and are treated as read-only afterward — Set is
// the only mutation path this package exposes.
package pos

import (
	"sort"
	"sync"

	"github.com/JosephPotashnik/EarleyParser/grammar"
)

var (
	mu            sync.RWMutex
	partsOfSpeech = map[string]bool{}
	scannedRules  = map[string]*grammar.Rule{}
)

// Set installs the process-wide PartsOfSpeech set and (re)builds the
// ScannedRules table from it. Call once, before constructing any Grammar
// or Parser; later calls replace the set wholesale.
func Set(tags ...string) {
	mu.Lock()
	defer mu.Unlock()
	partsOfSpeech = make(map[string]bool, len(tags))
	scannedRules = make(map[string]*grammar.Rule, len(tags))
	for _, t := range tags {
		partsOfSpeech[t] = true
		scannedRules[t] = grammar.NewScannedRule(t)
	}
}

// IsPartOfSpeech reports whether sym is a member of the injected set. It
// satisfies grammar.IsPOS.
func IsPartOfSpeech(sym grammar.Symbol) bool {
	mu.RLock()
	defer mu.RUnlock()
	return partsOfSpeech[sym]
}

// All returns the injected POS tags in sorted order.
func All() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(partsOfSpeech))
	for t := range partsOfSpeech {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ScannedRule returns the unique "tag -> *" rule used to seed pre-scanned
// terminal items for tag. Tags outside the injected set still get a
// (unregistered) rule on demand, so a vocabulary referencing an unknown
// tag doesn't panic the pre-scan step. Nothing checks vocabulary tags
// against the injected set.
func ScannedRule(tag grammar.Symbol) *grammar.Rule {
	mu.RLock()
	r, ok := scannedRules[tag]
	mu.RUnlock()
	if ok {
		return r
	}
	return grammar.NewScannedRule(tag)
}
