// Package grammar implements the production-rule data model: Rule and
// Grammar (spec components C1 and C2). It knows nothing about parsing; it
// only indexes and validates the rule set a parser consumes.
package grammar

import (
	"fmt"
	"strings"
)

// Symbol is an interned grammar symbol: a nonterminal name, a part-of-speech
// tag, or a single-quoted terminal literal.
type Symbol = string

// Distinguished symbols, per spec.md §3.
const (
	Start    Symbol = "START"
	Gamma    Symbol = "Gamma"
	Epsilon  Symbol = "ε"
	Wildcard Symbol = "*"
)

// Rule is an immutable production: an LHS category plus an ordered RHS.
// Lexical is true iff the RHS begins with one or more single-quoted
// terminal literals.
type Rule struct {
	LHS     Symbol
	RHS     []Symbol
	Lexical bool
}

// NewRule constructs a Rule from a raw (lhs, rhs) pair, enforcing the
// format invariant: a single-quoted terminal literal may not follow a
// nonterminal RHS entry.
func NewRule(lhs Symbol, rhs []Symbol) (*Rule, error) {
	if err := validateRHS(rhs); err != nil {
		return nil, fmt.Errorf("rule %s -> %s: %w", lhs, strings.Join(rhs, " "), err)
	}
	return &Rule{LHS: lhs, RHS: rhs, Lexical: len(rhs) > 0 && IsLiteral(rhs[0])}, nil
}

// NewScannedRule builds the unique "tag -> *" rule used by the
// ScannedRules table (pos package) to seed pre-scanned terminal items. It
// bypasses NewRule's validation because Wildcard is a synthetic terminal,
// never written by hand in a grammar file.
func NewScannedRule(tag Symbol) *Rule {
	return &Rule{LHS: tag, RHS: []Symbol{Wildcard}, Lexical: true}
}

// NewGammaRule builds the synthetic seed rule Gamma -> START.
func NewGammaRule() *Rule {
	return &Rule{LHS: Gamma, RHS: []Symbol{Start}}
}

func validateRHS(rhs []Symbol) error {
	sawNonLiteral := false
	for _, sym := range rhs {
		if IsLiteral(sym) {
			if sawNonLiteral {
				return fmt.Errorf("literal %s follows a nonterminal", sym)
			}
			continue
		}
		sawNonLiteral = true
	}
	return nil
}

// IsLiteral reports whether sym is a single-quoted terminal literal.
func IsLiteral(sym Symbol) bool {
	return len(sym) >= 2 && sym[0] == '\'' && sym[len(sym)-1] == '\''
}

// Unquote strips the surrounding single quotes from a literal symbol. It
// returns sym unchanged if sym is not a literal.
func Unquote(sym Symbol) Symbol {
	if !IsLiteral(sym) {
		return sym
	}
	return sym[1 : len(sym)-1]
}

// LiteralPrefixLen returns the number of leading literal symbols in the
// rule's RHS (possibly the whole RHS, possibly zero for a non-lexical
// rule).
func (r *Rule) LiteralPrefixLen() int {
	n := 0
	for n < len(r.RHS) && IsLiteral(r.RHS[n]) {
		n++
	}
	return n
}

// Equal compares two rules structurally.
func (r *Rule) Equal(o *Rule) bool {
	if o == nil || r.LHS != o.LHS || len(r.RHS) != len(o.RHS) {
		return false
	}
	for i, s := range r.RHS {
		if o.RHS[i] != s {
			return false
		}
	}
	return true
}

func (r *Rule) String() string {
	if len(r.RHS) == 0 {
		return fmt.Sprintf("%s -> %s", r.LHS, Epsilon)
	}
	return fmt.Sprintf("%s -> %s", r.LHS, strings.Join(r.RHS, " "))
}
