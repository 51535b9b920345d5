package chart

import (
	"strings"
	"testing"

	"github.com/JosephPotashnik/EarleyParser/grammar"
	"github.com/JosephPotashnik/EarleyParser/grammarsrc"
	"github.com/JosephPotashnik/EarleyParser/pos"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

const sampleCFG = `
START -> NP VP
NP -> PN
NP -> D N
NP -> D N PP
VP -> V1 NP
VP -> V1 NP PP
PP -> P NP
`

func sampleVocab() *vocab.Vocabulary {
	v := vocab.New()
	v.Add("the", "D")
	v.Add("boy", "N")
	v.Add("telescope", "N")
	v.Add("saw", "V1")
	v.Add("with", "P")
	v.Add("John", "PN")
	v.Add("Mary", "PN")
	return v
}

func buildGrammar(t *testing.T, src string, tags ...string) *grammar.Grammar {
	t.Helper()
	pos.Set(tags...)
	rules, err := grammarsrc.Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read grammar: %v", err)
	}
	g, err := grammar.New(rules, pos.IsPartOfSpeech)
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}
	return g
}

func TestParseSentence_SimpleAccepts(t *testing.T) {
	g := buildGrammar(t, sampleCFG, "PN", "V1", "D", "N", "P")
	p := NewParser(g, sampleVocab(), strings.Fields("John saw Mary"), 0, Options{})

	accepted, indicator := p.ParseSentence()
	if !accepted || indicator != 1 {
		t.Fatalf("got (%v, %d), want (true, 1)", accepted, indicator)
	}
	if got := p.CountDerivations(); got != 1 {
		t.Fatalf("CountDerivations() = %d, want 1", got)
	}

	yields := p.FormattedStrings(0, true)
	if len(yields) != 1 || yields[0] != "PN V1 PN" {
		t.Fatalf("FormattedStrings(posYield) = %v, want [\"PN V1 PN\"]", yields)
	}
}

func TestParseSentence_PPAttachmentAmbiguity(t *testing.T) {
	g := buildGrammar(t, sampleCFG, "PN", "V1", "D", "N", "P")
	p := NewParser(g, sampleVocab(), strings.Fields("the boy saw the boy with the telescope"), 0, Options{})

	accepted, indicator := p.ParseSentence()
	if !accepted || indicator != 1 {
		t.Fatalf("got (%v, %d), want (true, 1)", accepted, indicator)
	}
	if got := p.CountDerivations(); got != 2 {
		t.Fatalf("CountDerivations() = %d, want 2 (PP-attachment ambiguity)", got)
	}

	bracketed := p.FormattedStrings(0, false)
	if len(bracketed) != 2 {
		t.Fatalf("FormattedStrings(bracketed) returned %d strings, want 2", len(bracketed))
	}
	if bracketed[0] == bracketed[1] {
		t.Fatalf("expected distinct bracketings, got two identical strings: %s", bracketed[0])
	}

	yields := p.FormattedStrings(0, true)
	for _, y := range yields {
		if y != "D N V1 D N P D N" {
			t.Fatalf("FormattedStrings(posYield) = %v, want both entries \"D N V1 D N P D N\"", yields)
		}
	}
}

func TestParseSentence_RejectsUnparseable(t *testing.T) {
	g := buildGrammar(t, sampleCFG, "PN", "V1", "D", "N", "P")
	p := NewParser(g, sampleVocab(), strings.Fields("saw"), 0, Options{})

	accepted, indicator := p.ParseSentence()
	if accepted || indicator != 0 {
		t.Fatalf("got (%v, %d), want (false, 0)", accepted, indicator)
	}
}

func TestParseSentence_UnitCycleCountsOnlyFiniteDerivations(t *testing.T) {
	cycleCFG := `
START -> A
A -> B
B -> A
A -> 'x'
`
	pos.Set()
	rules, err := grammarsrc.Read(strings.NewReader(cycleCFG))
	if err != nil {
		t.Fatalf("read grammar: %v", err)
	}
	g, err := grammar.New(rules, pos.IsPartOfSpeech)
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}

	p := NewParser(g, vocab.New(), []string{"x"}, 0, Options{})
	accepted, indicator := p.ParseSentence()
	if !accepted || indicator != 1 {
		t.Fatalf("got (%v, %d), want (true, 1)", accepted, indicator)
	}
	if got := p.CountDerivations(); got != 1 {
		t.Fatalf("CountDerivations() = %d, want 1 (unit cycle contributes 0)", got)
	}

	// Enumeration must terminate despite the A <-> B cycle.
	strs := p.FormattedStrings(0, false)
	if len(strs) != 1 {
		t.Fatalf("FormattedStrings() returned %d entries, want 1", len(strs))
	}
}

func TestParseSentence_ChartOverflowRejectsCleanly(t *testing.T) {
	ambiguousCFG := `
START -> S
S -> S S
S -> 'a'
`
	pos.Set()
	rules, err := grammarsrc.Read(strings.NewReader(ambiguousCFG))
	if err != nil {
		t.Fatalf("read grammar: %v", err)
	}
	g, err := grammar.New(rules, pos.IsPartOfSpeech)
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}

	tokens := strings.Fields(strings.Repeat("a ", 12))
	p := NewParser(g, vocab.New(), tokens, 0, Options{MaxCompleted: 5})

	accepted, indicator := p.ParseSentence()
	if accepted || indicator != 0 {
		t.Fatalf("got (%v, %d), want (false, 0)", accepted, indicator)
	}
	for _, col := range p.Columns() {
		if !col.AgendasEmpty() {
			t.Fatalf("column %d still has pending agenda entries after overflow rejection", col.Index)
		}
	}
}

func TestReparse_IdempotentAndIndependentOfPriorGrammar(t *testing.T) {
	g1 := buildGrammar(t, sampleCFG, "PN", "V1", "D", "N", "P")
	tokens := strings.Fields("John saw Mary")
	p := NewParser(g1, sampleVocab(), tokens, 0, Options{})

	accepted1, indicator1 := p.ParseSentence()
	accepted2, indicator2 := p.ParseSentence()
	if accepted1 != accepted2 || indicator1 != indicator2 {
		t.Fatalf("parse is not idempotent: (%v,%d) vs (%v,%d)", accepted1, indicator1, accepted2, indicator2)
	}

	prescanBefore := map[int]int{}
	for i := range tokens {
		prescanBefore[i] = len(p.prescanned[i])
	}

	g2 := buildGrammar(t, sampleCFG, "PN", "V1", "D", "N", "P")
	accepted3, indicator3 := p.Reparse(g2)
	if accepted3 != accepted1 || indicator3 != indicator1 {
		t.Fatalf("reparse changed the result: (%v,%d) vs (%v,%d)", accepted3, indicator3, accepted1, indicator1)
	}

	for i := range tokens {
		if len(p.prescanned[i]) != prescanBefore[i] {
			t.Fatalf("prescanned cache at column %d changed across reparse: %d vs %d", i, len(p.prescanned[i]), prescanBefore[i])
		}
		for _, item := range p.prescanned[i] {
			if _, ok := p.columns[i].SpanFor(item.Rule.LHS, 1); !ok {
				t.Fatalf("prescanned reductor for %s not restored into column %d after reset", item.Rule.LHS, i)
			}
		}
	}
}

func TestReparse_RejectsThenRecovers(t *testing.T) {
	g1 := buildGrammar(t, sampleCFG, "PN", "V1", "D", "N", "P")
	tokens := strings.Fields("John saw Mary")
	p := NewParser(g1, sampleVocab(), tokens, 0, Options{})

	accepted1, indicator1 := p.ParseSentence()
	if !accepted1 || indicator1 != 1 {
		t.Fatalf("initial parse with g1: got (%v, %d), want (true, 1)", accepted1, indicator1)
	}
	count1 := p.CountDerivations()

	const cfgMissingProperNoun = `
START -> NP VP
NP -> D N
NP -> D N PP
VP -> V1 NP
VP -> V1 NP PP
PP -> P NP
`
	g2 := buildGrammar(t, cfgMissingProperNoun, "PN", "V1", "D", "N", "P")
	accepted2, indicator2 := p.Reparse(g2)
	if accepted2 || indicator2 != 0 {
		t.Fatalf("reparse with g2 (missing NP -> PN): got (%v, %d), want (false, 0)", accepted2, indicator2)
	}

	accepted3, indicator3 := p.Reparse(g1)
	if !accepted3 || indicator3 != 1 {
		t.Fatalf("reparse back to g1: got (%v, %d), want (true, 1)", accepted3, indicator3)
	}
	if count3 := p.CountDerivations(); count3 != count1 {
		t.Fatalf("reparse back to g1 changed derivation count: %d vs %d", count3, count1)
	}
}

func TestGenerateSentence_OverflowIsFatal(t *testing.T) {
	genCFG := `
START -> S
S -> S S
S -> N
`
	pos.Set("N")
	rules, err := grammarsrc.Read(strings.NewReader(genCFG))
	if err != nil {
		t.Fatalf("read grammar: %v", err)
	}
	g, err := grammar.New(rules, pos.IsPartOfSpeech)
	if err != nil {
		t.Fatalf("build grammar: %v", err)
	}

	p := NewParser(g, vocab.New(), nil, 8, Options{MaxCompleted: 5})
	_, _, err = p.GenerateSentence()
	if err != ErrTooManyItems {
		t.Fatalf("GenerateSentence() err = %v, want ErrTooManyItems", err)
	}
}
