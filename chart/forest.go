package chart

import (
	"strings"

	"github.com/JosephPotashnik/EarleyParser/grammar"
)

// isScannedLeaf reports whether item is a ScannedRules pre-scan leaf
// ("tag -> *"), as opposed to a state produced by lexicalized-prefix
// matching against a literal RHS.
func isScannedLeaf(it *Item) bool {
	return len(it.Rule.RHS) == 1 && it.Rule.RHS[0] == grammar.Wildcard
}

func unquoteLiteral(sym grammar.Symbol) string { return grammar.Unquote(sym) }

// visitedCounts implements spec.md §4.8's count traversal exactly: a span
// present in the map with value 0 is either genuinely mid-visit (grey) or
// genuinely has zero finite derivations — both cases correctly return 0,
// so the single map doubles as colouring and memoization.
type visitedCounts map[*Span]int

func newVisitedCounts() visitedCounts { return visitedCounts{} }

// Count sums the derivation counts of every reductor, short-circuiting a
// cycle (a span already mid-visit) to zero.
func (s *Span) Count(visited visitedCounts) int {
	if v, ok := visited[s]; ok {
		return v
	}
	visited[s] = 0
	total := 0
	for _, r := range s.Reductors {
		total += r.Count(visited)
	}
	visited[s] = total
	return total
}

// Count combines the predecessor chain's count with this item's own
// reductor span's count: p*r if there is a predecessor contribution,
// otherwise just r (a leaf or a literal-prefix item has no predecessor to
// multiply against).
func (it *Item) Count(visited visitedCounts) int {
	r := 1
	if it.ReductorSpan != nil {
		r = it.ReductorSpan.Count(visited)
	}
	p := 0
	if it.Dot > 1 && it.Predecessor != nil {
		p = it.Predecessor.Count(visited)
	}
	if p > 0 {
		return p * r
	}
	return r
}

// enumVisited implements the three-colour traversal for enumeration:
// inProgress tracks spans currently on the DFS stack (grey, cut to the
// empty set), cache memoizes finished spans (black).
type enumVisited struct {
	inProgress map[*Span]bool
	cache      map[*Span][]string
}

func newEnumVisited() *enumVisited {
	return &enumVisited{inProgress: map[*Span]bool{}, cache: map[*Span][]string{}}
}

// Enumerate produces every bracketed (or POS-yield) string this span's
// packed derivations can produce. A span already on the DFS stack (a
// cycle) contributes the empty set.
func (s *Span) Enumerate(v *enumVisited, posYield bool) []string {
	if v.inProgress[s] {
		return nil
	}
	if cached, ok := v.cache[s]; ok {
		return cached
	}

	v.inProgress[s] = true
	var out []string
	for _, r := range s.Reductors {
		for _, inner := range r.Enumerate(v, posYield) {
			if posYield {
				out = append(out, inner)
			} else {
				out = append(out, "("+s.LHS+" "+inner+")")
			}
		}
	}
	delete(v.inProgress, s)
	v.cache[s] = out
	return out
}

// Enumerate computes the cross product of this item's predecessor chain's
// strings and its own contribution (its reductor span's enumeration, or —
// for a leaf with no reductor span — the matched terminal text).
func (it *Item) Enumerate(v *enumVisited, posYield bool) []string {
	var predStrings []string
	if it.Dot > 1 && it.Predecessor != nil {
		predStrings = it.Predecessor.Enumerate(v, posYield)
	}

	var ownStrings []string
	if it.ReductorSpan != nil {
		ownStrings = it.ReductorSpan.Enumerate(v, posYield)
	} else {
		ownStrings = []string{it.leafText(posYield)}
	}

	if predStrings == nil {
		return ownStrings
	}

	out := make([]string, 0, len(predStrings)*len(ownStrings))
	for _, p := range predStrings {
		for _, o := range ownStrings {
			out = append(out, joinNonEmpty(p, o))
		}
	}
	return out
}

// leafText computes an Item's own contribution when it has no reductor
// span: either a pre-scanned ScannedRules leaf (Rule.RHS == [Wildcard],
// Token holds the matched surface word) or a state produced by
// lexicalized-prefix matching (spec.md §4.7 item 3), which never goes
// through Predecessor/ReductorSpan at all. In POS-yield mode, a scanned
// leaf contributes its own POS tag; a literal prefix is filtered to
// nothing, since it is surface text, not a tag.
func (it *Item) leafText(posYield bool) string {
	if isScannedLeaf(it) {
		if posYield {
			return it.Rule.LHS
		}
		return it.Token
	}

	if posYield {
		return ""
	}
	words := make([]string, 0, it.Dot)
	for i := 0; i < it.Dot && i < len(it.Rule.RHS); i++ {
		words = append(words, unquoteLiteral(it.Rule.RHS[i]))
	}
	return strings.Join(words, " ")
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
