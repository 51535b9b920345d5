package grammar

import "testing"

func isPOSSet(tags ...string) IsPOS {
	set := map[string]bool{}
	for _, t := range tags {
		set[t] = true
	}
	return func(sym Symbol) bool { return set[sym] }
}

func TestNew_AcceptsWellFormedGrammar(t *testing.T) {
	rules := []*Rule{
		{LHS: Start, RHS: []Symbol{"S"}},
		{LHS: "S", RHS: []Symbol{"N"}},
	}
	g, err := New(rules, isPOSSet("N"))
	if err != nil {
		t.Fatalf("New() = %v, want no error", err)
	}
	if !g.Has(Start) {
		t.Fatalf("expected START to have a reachable rule")
	}
}

func TestNew_RejectsMissingStartRule(t *testing.T) {
	rules := []*Rule{
		{LHS: "S", RHS: []Symbol{"N"}},
	}
	if _, err := New(rules, isPOSSet("N")); err == nil {
		t.Fatalf("New() with no START rule = nil error, want an error")
	}
}

func TestNew_RejectsDuplicateStartRule(t *testing.T) {
	rules := []*Rule{
		{LHS: Start, RHS: []Symbol{"S"}},
		{LHS: Start, RHS: []Symbol{"N"}},
		{LHS: "S", RHS: []Symbol{"N"}},
	}
	if _, err := New(rules, isPOSSet("N")); err == nil {
		t.Fatalf("New() with two START rules = nil error, want an error")
	}
}

func TestNew_RejectsStartOnRHS(t *testing.T) {
	rules := []*Rule{
		{LHS: Start, RHS: []Symbol{"S"}},
		{LHS: "S", RHS: []Symbol{Start}},
	}
	if _, err := New(rules, isPOSSet()); err == nil {
		t.Fatalf("New() with START on a rhs = nil error, want an error")
	}
}

func TestNewRule_RejectsLiteralAfterNonterminal(t *testing.T) {
	if _, err := NewRule("S", []Symbol{"N", "'x'"}); err == nil {
		t.Fatalf("NewRule() with a literal following a nonterminal = nil error, want an error")
	}
}

func TestNew_RejectsUnknownRHSSymbol(t *testing.T) {
	rules := []*Rule{
		{LHS: Start, RHS: []Symbol{"FOO"}},
	}
	if _, err := New(rules, isPOSSet()); err == nil {
		t.Fatalf("New() with an undefined rhs symbol = nil error, want an error")
	}
}
