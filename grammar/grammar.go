package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// IsPOS classifies a symbol as a part-of-speech tag. Grammar never decides
// this on its own; the caller (normally pos.IsPartOfSpeech) injects it.
type IsPOS func(Symbol) bool

// kind distinguishes the concretization strategy a Grammar was built
// with. cfgKind is the only strategy New ever produces today; the field
// exists so a future linear-indexed-grammar strategy has somewhere to
// live without reshaping Grammar's public surface.
type kind int

const cfgKind kind = 0

// Grammar is an indexed rule set restricted to rules reachable from START,
// plus the schematic set preserving every rule as written (spec.md §3,
// §4.2).
type Grammar struct {
	isPOS Symbol2POSFunc
	kind  kind

	schematic map[Symbol][]*Rule
	reachable map[Symbol][]*Rule
}

// Symbol2POSFunc avoids exporting the IsPOS name twice; kept for readers
// skimming the type next to isPOS.
type Symbol2POSFunc = IsPOS

// New builds a Grammar from a raw rule list: it validates the single-START
// invariant, renames nonterminals to X1, X2, … (preserving START, Gamma and
// POS tags), rewrites POS occurrences through dedicated introduction rules,
// and rejects any rhs symbol nothing defines (spec.md §4.2). The synthetic
// Gamma -> START rule is not part of the Grammar; the chart parser builds
// it itself when seeding.
func New(rules []*Rule, isPOS IsPOS) (*Grammar, error) {
	if err := validateStartInvariant(rules); err != nil {
		return nil, err
	}

	names := &nameGenerator{next: 1}
	renamed := renameVariables(rules, isPOS, names)
	rewritten := assignPOSRules(renamed, isPOS, names)

	if err := validateRHSSymbolsDefined(rewritten, isPOS); err != nil {
		return nil, err
	}

	g := &Grammar{
		isPOS:     isPOS,
		kind:      cfgKind,
		schematic: map[Symbol][]*Rule{},
		reachable: map[Symbol][]*Rule{},
	}

	for _, r := range rewritten {
		g.Insert(r)
	}
	return g, nil
}

func validateStartInvariant(rules []*Rule) error {
	count := 0
	for _, r := range rules {
		if r.LHS == Start {
			count++
		}
		for _, s := range r.RHS {
			if s == Start {
				return fmt.Errorf("grammar: START must not appear on a right-hand side (rule %s)", r)
			}
		}
	}
	if count != 1 {
		return fmt.Errorf("grammar: expected exactly one START rule, found %d", count)
	}
	return nil
}

// validateRHSSymbolsDefined implements spec.md §7's "unknown rhs symbol"
// fatal check: every rhs entry in the rewritten rule set must be a literal,
// a POS tag, or some rule's lhs — never a symbol nothing defines. Run after
// renaming and POS-assignment, so a typo'd or dangling symbol has already
// been renamed to a fresh variable (the error names that variable); the
// check turns it into an error instead of an unreachable, undefined symbol.
func validateRHSSymbolsDefined(rules []*Rule, isPOS IsPOS) error {
	defined := map[Symbol]bool{}
	for _, r := range rules {
		defined[r.LHS] = true
	}
	for _, r := range rules {
		for _, sym := range r.RHS {
			if IsLiteral(sym) || sym == Wildcard || isPOS(sym) || defined[sym] {
				continue
			}
			return fmt.Errorf("grammar: unknown rhs symbol %s in rule %s", sym, r)
		}
	}
	return nil
}

type nameGenerator struct {
	next int
}

func (n *nameGenerator) fresh() Symbol {
	name := fmt.Sprintf("X%d", n.next)
	n.next++
	return name
}

// renameVariables implements the variable-renaming pre-step: every
// non-START, non-Gamma, non-POS, non-literal symbol is renamed to X1, X2, …
// consistently across the whole rule set.
func renameVariables(rules []*Rule, isPOS IsPOS, names *nameGenerator) []*Rule {
	mapping := map[Symbol]Symbol{}
	rename := func(sym Symbol) Symbol {
		if sym == Start || sym == Gamma || IsLiteral(sym) || isPOS(sym) {
			return sym
		}
		if mapped, ok := mapping[sym]; ok {
			return mapped
		}
		mapped := names.fresh()
		mapping[sym] = mapped
		return mapped
	}

	out := make([]*Rule, len(rules))
	for i, r := range rules {
		lhs := rename(r.LHS)
		rhs := make([]Symbol, len(r.RHS))
		for j, s := range r.RHS {
			rhs[j] = rename(s)
		}
		out[i] = &Rule{LHS: lhs, RHS: rhs, Lexical: r.Lexical}
	}
	return out
}

// assignPOSRules implements the POS-assignment pre-step: every POS symbol
// that appears on some RHS is given one dedicated fresh nonterminal and
// introduction rule (Xk -> POS), and all its RHS occurrences are rewritten
// to use Xk instead.
func assignPOSRules(rules []*Rule, isPOS IsPOS, names *nameGenerator) []*Rule {
	posToX := map[Symbol]Symbol{}
	xFor := func(tag Symbol) Symbol {
		if x, ok := posToX[tag]; ok {
			return x
		}
		x := names.fresh()
		posToX[tag] = x
		return x
	}

	out := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		rhs := make([]Symbol, len(r.RHS))
		changed := false
		for j, s := range r.RHS {
			if !IsLiteral(s) && isPOS(s) {
				rhs[j] = xFor(s)
				changed = true
			} else {
				rhs[j] = s
			}
		}
		if changed {
			out = append(out, &Rule{LHS: r.LHS, RHS: rhs, Lexical: r.Lexical})
		} else {
			out = append(out, r)
		}
	}

	tags := make([]Symbol, 0, len(posToX))
	for tag := range posToX {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		out = append(out, &Rule{LHS: posToX[tag], RHS: []Symbol{tag}})
	}
	return out
}

// Insert adds rule to the schematic set and recomputes the reachable map
// (a BFS from START over the schematic rule set, skipping literals).
func (g *Grammar) Insert(rule *Rule) {
	g.schematic[rule.LHS] = append(g.schematic[rule.LHS], rule)
	g.recomputeReachable()
}

func (g *Grammar) recomputeReachable() {
	reachable := map[Symbol][]*Rule{}
	visited := map[Symbol]bool{}
	queue := []Symbol{Start}
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		if visited[sym] {
			continue
		}
		visited[sym] = true
		for _, rule := range g.schematic[sym] {
			reachable[sym] = append(reachable[sym], rule)
			for _, rhsSym := range rule.RHS {
				if IsLiteral(rhsSym) || rhsSym == Wildcard {
					continue
				}
				if !visited[rhsSym] {
					queue = append(queue, rhsSym)
				}
			}
		}
	}
	g.reachable = reachable
}

// RulesFor returns the reachable rules with the given LHS, or nil.
func (g *Grammar) RulesFor(lhs Symbol) []*Rule { return g.reachable[lhs] }

// SchematicRulesFor returns every rule with the given LHS as written,
// regardless of reachability.
func (g *Grammar) SchematicRulesFor(lhs Symbol) []*Rule { return g.schematic[lhs] }

// Has reports whether lhs has at least one reachable rule.
func (g *Grammar) Has(lhs Symbol) bool { return len(g.reachable[lhs]) > 0 }

// LexicalRules returns every reachable rule whose RHS begins with a
// literal, across all LHS categories.
func (g *Grammar) LexicalRules() []*Rule {
	var out []*Rule
	for _, rules := range g.reachable {
		for _, r := range rules {
			if r.Lexical {
				out = append(out, r)
			}
		}
	}
	return out
}

// DFS marks every nonterminal reachable from start in visited, walking the
// schematic set. Useful for grammar validation independent of the
// START-rooted reachable map.
func (g *Grammar) DFS(start Symbol, visited map[Symbol]bool) {
	if visited[start] {
		return
	}
	visited[start] = true
	for _, rule := range g.schematic[start] {
		for _, sym := range rule.RHS {
			if IsLiteral(sym) || sym == Wildcard {
				continue
			}
			g.DFS(sym, visited)
		}
	}
}

// LHSSymbols returns every distinct LHS category the schematic set
// defines, sorted. Written rules may define a category DFS from START
// never visits; Unreachable uses this to find them.
func (g *Grammar) LHSSymbols() []Symbol {
	out := make([]Symbol, 0, len(g.schematic))
	for lhs := range g.schematic {
		out = append(out, lhs)
	}
	sort.Strings(out)
	return out
}

// Unreachable returns every schematic LHS that DFS from START never
// visits: dead grammar (a rule nothing can ever expand into), not a
// format error.
func (g *Grammar) Unreachable() []Symbol {
	visited := map[Symbol]bool{}
	g.DFS(Start, visited)

	var out []Symbol
	for _, lhs := range g.LHSSymbols() {
		if !visited[lhs] {
			out = append(out, lhs)
		}
	}
	return out
}

// Format renders the reachable rule set back to the textual notation
// grammarsrc reads, in deterministic LHS order, so tooling (earley validate
// --print-rewritten) can show the rewritten grammar actually used for
// parsing. Epsilon rules are written with the ε symbol, which
// grammarsrc.Read reads back as a symbol rather than as an empty rhs.
func (g *Grammar) Format() string {
	lhss := make([]Symbol, 0, len(g.reachable))
	for lhs := range g.reachable {
		lhss = append(lhss, lhs)
	}
	sort.Strings(lhss)

	var b strings.Builder
	for _, lhs := range lhss {
		for _, r := range g.reachable[lhs] {
			b.WriteString(r.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
