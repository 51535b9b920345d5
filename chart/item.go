package chart

import (
	"fmt"

	"github.com/JosephPotashnik/EarleyParser/grammar"
)

// Item is an Earley state: a dotted rule with a start column, plus the
// back pointers Earley calls "causes" (spec.md §3, §9, component C8).
// EndCol is derived from wherever the item ends up being inserted.
type Item struct {
	Rule     *grammar.Rule
	Dot      int
	StartCol *Column
	EndCol   *Column

	// Predecessor is the item with one fewer dot that this item advances.
	// Nil for freshly predicted items (Dot == 0) and for items created
	// directly by lexicalized-prefix matching (Dot == LiteralPrefixLen,
	// no chart-driven cause yet).
	Predecessor *Item

	// ReductorSpan is the packed completed node that advanced this item's
	// dot, when the advance was caused by a completed nonterminal rather
	// than literal-prefix consumption.
	ReductorSpan *Span

	// Token is the surface word this item matched, set only on
	// pre-scanned "tag -> *" leaf items (ScannedRules table, spec.md
	// §4.7 pre-scan step). It is the Wildcard RHS symbol's concrete
	// realization and has no other role in the chart.
	Token string
}

// Completed reports whether the dot has reached the end of the RHS.
func (it *Item) Completed() bool { return it.Dot >= len(it.Rule.RHS) }

// NextTerm returns the RHS symbol immediately after the dot. Callers must
// check Completed first; NextTerm panics on a completed item the same way
// indexing past the end of RHS would.
func (it *Item) NextTerm() grammar.Symbol { return it.Rule.RHS[it.Dot] }

func (it *Item) String() string {
	end := -1
	if it.EndCol != nil {
		end = it.EndCol.Index
	}
	return fmt.Sprintf("[%s, dot=%d, %d-%d]", it.Rule, it.Dot, it.StartCol.Index, end)
}
