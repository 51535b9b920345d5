package chart

import (
	"github.com/JosephPotashnik/EarleyParser/grammar"
	"github.com/JosephPotashnik/EarleyParser/pos"
	"github.com/JosephPotashnik/EarleyParser/vocab"
)

// Options configures the two caps spec.md §5 and §7 describe: the
// per-column completed-state guard and the generator's overflow
// multiplier over it. The zero value is not useable directly; NewParser
// fills in the documented defaults for any field left at zero.
type Options struct {
	// MaxCompleted is the per-column completed-state cap. A column whose
	// count exceeds it causes a clean rejection. Default 50000.
	MaxCompleted int
	// GeneratorOverflowMultiplier scales MaxCompleted into the generator's
	// fatal overflow threshold. Default 2.
	GeneratorOverflowMultiplier int
}

func (o Options) normalized() Options {
	if o.MaxCompleted <= 0 {
		o.MaxCompleted = 50000
	}
	if o.GeneratorOverflowMultiplier <= 0 {
		o.GeneratorOverflowMultiplier = 2
	}
	return o
}

// Parser is the chart driver (spec.md §4.7, component C9): it owns the
// fixed-length column sequence for one input (or, in generator mode, one
// maximum sentence length) and runs the predict/complete main loop over
// it. A Parser instance is not safe for concurrent use; run independent
// parsers concurrently instead (spec.md §5).
type Parser struct {
	grammar  *grammar.Grammar
	vocab    *vocab.Vocabulary
	tokens   []string
	maxWords int
	opts     Options

	columns    []*Column
	prescanned map[int][]*Item

	accepted            bool
	derivationIndicator int
}

// NewParser builds the fixed column sequence for tokens, runs pre-scan
// and lexicalized-rule matching against g, seeds the Gamma start item, and
// returns a Parser ready for ParseSentence. maxWords is consulted by
// GenerateSentence, which ignores tokens entirely, and by CountDerivations
// when there are no tokens.
func NewParser(g *grammar.Grammar, v *vocab.Vocabulary, tokens []string, maxWords int, opts Options) *Parser {
	p := &Parser{
		grammar:    g,
		vocab:      v,
		tokens:     tokens,
		maxWords:   maxWords,
		opts:       opts.normalized(),
		prescanned: map[int][]*Item{},
	}
	p.initColumns()
	return p
}

func (p *Parser) initColumns() {
	n := len(p.tokens)
	p.columns = make([]*Column, n+1)
	p.columns[0] = newColumn(0, "", false)
	for i := 1; i <= n; i++ {
		p.columns[i] = newColumn(i, p.tokens[i-1], true)
	}
	p.prescan()
	p.matchLexicalRules()
	p.seed()
}

// prescan implements spec.md §4.7 step 2: for every input position, every
// POS tag the vocabulary allows for that token gets a synthetic completed
// "tag -> *" item filed directly into the reductors of the column where it
// starts, bypassing the agenda entirely. Each (column, item) pair is also
// cached so a later Reparse can restore them without rescanning.
func (p *Parser) prescan() {
	for i, token := range p.tokens {
		for _, tag := range p.vocab.POSFor(token) {
			item := &Item{
				Rule:     pos.ScannedRule(tag),
				Dot:      1,
				StartCol: p.columns[i],
				EndCol:   p.columns[i+1],
				Token:    token,
			}
			p.columns[i].RecordReductor(item, 1)
			p.prescanned[i] = append(p.prescanned[i], item)
		}
	}
}

// matchLexicalRules implements spec.md §4.7 step 3: every lexical rule's
// leading literal prefix is matched, whole or not at all, against every
// starting position. A full match exactly as long as the rule's rhs is
// filed as a pre-completed span; a shorter full-prefix match is filed as
// a non-completed item advanced past its literal prefix.
func (p *Parser) matchLexicalRules() {
	n := len(p.tokens)
	for _, rule := range p.grammar.LexicalRules() {
		k := rule.LiteralPrefixLen()
		if k == 0 {
			continue
		}
		for i := 0; i+k <= n; i++ {
			if !literalPrefixMatches(rule, i, p.tokens) {
				continue
			}
			item := &Item{Rule: rule, Dot: k, StartCol: p.columns[i]}
			if k == len(rule.RHS) {
				item.EndCol = p.columns[i+k]
				p.columns[i].RecordReductor(item, k)
			} else {
				p.columns[i+k].AddState(item, p.grammar)
			}
		}
	}
}

func literalPrefixMatches(rule *grammar.Rule, start int, tokens []string) bool {
	for j := 0; j < rule.LiteralPrefixLen(); j++ {
		if grammar.Unquote(rule.RHS[j]) != tokens[start+j] {
			return false
		}
	}
	return true
}

// seed inserts the synthetic Gamma -> START item into column 0 (spec.md
// §4.7 step 4, §9). Gamma is never registered with the grammar; it exists
// purely to give the driver a context-free place to start predicting.
func (p *Parser) seed() {
	item := &Item{Rule: grammar.NewGammaRule(), Dot: 0, StartCol: p.columns[0]}
	p.columns[0].AddState(item, p.grammar)
}

// ParseSentence runs the main loop against the grammar and tokens this
// Parser was constructed with, and reports acceptance plus a 0/1
// derivation indicator (spec.md §6).
func (p *Parser) ParseSentence() (accepted bool, derivationIndicator int) {
	p.run()
	return p.accepted, p.derivationIndicator
}

// Reparse swaps in a new grammar, resets every column, restores the
// cached pre-scanned terminals, re-seeds Gamma, and runs the main loop
// again (spec.md §4.7 "Reparse"). Lexicalized-rule matching is not
// rerun: only the cached pre-scan survives a grammar swap.
func (p *Parser) Reparse(g *grammar.Grammar) (accepted bool, derivationIndicator int) {
	p.grammar = g
	for _, col := range p.columns {
		col.reset()
	}
	for i, items := range p.prescanned {
		for _, item := range items {
			p.columns[i].RecordReductor(item, item.EndCol.Index-item.StartCol.Index)
		}
	}
	p.seed()
	p.run()
	return p.accepted, p.derivationIndicator
}

// run drives the predict/complete main loop column by column (spec.md
// §4.7 "Main loop"). Within a column, completion and prediction alternate
// until both agendas are empty, since an epsilon completion triggered by
// a fresh prediction can repopulate the completed-states agenda.
func (p *Parser) run() {
	for _, col := range p.columns {
		p.drainColumn(col)
		if col.CompletedStateCount() > p.opts.MaxCompleted {
			p.rejectAndDrain()
			return
		}
	}
	p.finalizeAcceptance(len(p.tokens))
}

func (p *Parser) drainColumn(col *Column) {
	for !col.AgendasEmpty() {
		for {
			item, ok := col.DequeueComplete()
			if !ok {
				break
			}
			p.complete(col, item)
		}
		for {
			sym, ok := col.DequeuePredict()
			if !ok {
				break
			}
			p.predict(col, sym)
		}
	}
}

func (p *Parser) rejectAndDrain() {
	for _, col := range p.columns {
		col.DrainAgendas()
	}
	p.accepted = false
	p.derivationIndicator = 0
}

func (p *Parser) finalizeAcceptance(length int) {
	if _, ok := p.columns[0].SpanFor(grammar.Start, length); ok {
		p.accepted = true
		p.derivationIndicator = 1
		return
	}
	p.accepted = false
	p.derivationIndicator = 0
}

// Predict inserts a fresh dot-0 item for every non-lexical rule with the
// given lhs (spec.md §4.7 "Predict"). Lexical rules never go through
// Predict; their literal prefixes are matched once, up front, by
// matchLexicalRules.
func (p *Parser) predict(col *Column, nonterminal string) {
	for _, rule := range p.grammar.RulesFor(nonterminal) {
		if rule.Lexical {
			continue
		}
		col.AddState(&Item{Rule: rule, Dot: 0, StartCol: col}, p.grammar)
	}
}

// Complete files reductor into its start column's span index and, unless
// that triggered local ambiguity packing into an already-existing span,
// advances every predecessor waiting on the reductor's lhs (spec.md §4.7
// "Complete").
func (p *Parser) complete(col *Column, reductor *Item) {
	start := reductor.StartCol
	lhs := reductor.Rule.LHS
	length := col.Index - start.Index

	span, existed := start.RecordReductor(reductor, length)
	if existed {
		return
	}

	for _, predecessor := range start.PredecessorsFor(lhs) {
		advanced := &Item{
			Rule:         predecessor.Rule,
			Dot:          predecessor.Dot + 1,
			StartCol:     predecessor.StartCol,
			Predecessor:  predecessor,
			ReductorSpan: span,
		}
		col.AddState(advanced, p.grammar)
	}
}

// GenerateSentence runs generator mode (spec.md §4.7 "Generator mode"):
// the chart is rebuilt with maxWords+1 columns, seeded only with Gamma, and
// driven by Predict with a POS-wildcard scan standing in for an actual
// token at every position. After each column it checks the derivation
// count of the START span whose length equals that column's index against
// the generator overflow threshold, aborting with ErrTooManyItems if it is
// exceeded.
func (p *Parser) GenerateSentence() (accepted bool, derivationIndicator int, err error) {
	n := p.maxWords
	p.columns = make([]*Column, n+1)
	for i := 0; i <= n; i++ {
		p.columns[i] = newColumn(i, "", false)
	}
	for i := 0; i < n; i++ {
		p.seedWildcardScan(i)
	}
	p.seed()

	overflow := p.opts.GeneratorOverflowMultiplier * p.opts.MaxCompleted
	for _, col := range p.columns {
		p.drainColumn(col)
		if span, ok := p.columns[0].SpanFor(grammar.Start, col.Index); ok {
			if span.Count(newVisitedCounts()) > overflow {
				return false, 0, ErrTooManyItems
			}
		}
	}

	p.finalizeAcceptance(n)
	return p.accepted, p.derivationIndicator, nil
}

func (p *Parser) seedWildcardScan(i int) {
	for _, tag := range pos.All() {
		item := &Item{
			Rule:     pos.ScannedRule(tag),
			Dot:      1,
			StartCol: p.columns[i],
			EndCol:   p.columns[i+1],
		}
		p.columns[i].RecordReductor(item, 1)
	}
}

// HasDerivation reports whether the most recent run accepted.
func (p *Parser) HasDerivation() bool { return p.accepted }

// CountDerivations returns the derivation count of the root START span, or
// 0 if the most recent run did not accept.
func (p *Parser) CountDerivations() int {
	if !p.accepted {
		return 0
	}
	length := len(p.tokens)
	if p.maxWords > 0 && len(p.tokens) == 0 {
		length = p.maxWords
	}
	span, ok := p.columns[0].SpanFor(grammar.Start, length)
	if !ok {
		return 0
	}
	return span.Count(newVisitedCounts())
}

// FormattedStrings enumerates the derivations of the START span that
// starts at columnIndex and runs to the end of the chart, either fully
// bracketed or, when posYieldOnly is set, as a bare part-of-speech yield
// (spec.md §6 "formatted_strings").
func (p *Parser) FormattedStrings(columnIndex int, posYieldOnly bool) []string {
	if columnIndex < 0 || columnIndex >= len(p.columns) {
		return nil
	}
	length := len(p.columns) - 1 - columnIndex
	span, ok := p.columns[columnIndex].SpanFor(grammar.Start, length)
	if !ok {
		return nil
	}
	return span.Enumerate(newEnumVisited(), posYieldOnly)
}

// Derivations caps FormattedStrings(0, false) at n results; n<=0 means
// unbounded. Enumeration over a heavily ambiguous forest can be
// exponential, so this is a safety valve, not part of the core
// acceptance/count contract.
func (p *Parser) Derivations(n int) []string {
	all := p.FormattedStrings(0, false)
	if n <= 0 || n >= len(all) {
		return all
	}
	return all[:n]
}

// Columns exposes the underlying chart for tests.
func (p *Parser) Columns() []*Column { return p.columns }
