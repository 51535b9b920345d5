package chart

import "github.com/JosephPotashnik/EarleyParser/grammar"

// Column is an Earley set (spec.md §3, §4.6, component C7): the chart
// position's predecessors, reductors (span index), the two agendas, and
// the completed-state counter the overflow guard watches.
type Column struct {
	Index    int
	Token    string
	HasToken bool

	predecessors map[string][]*Item
	reductors    *spanIndex

	completeAgenda      *completedAgenda
	predictQueue        *predictAgenda
	completedStateCount int
}

func newColumn(index int, token string, hasToken bool) *Column {
	return &Column{
		Index:          index,
		Token:          token,
		HasToken:       hasToken,
		predecessors:   map[string][]*Item{},
		reductors:      newSpanIndex(),
		completeAgenda: newCompletedAgenda(),
		predictQueue:   newPredictAgenda(),
	}
}

// reset clears predecessors, reductors, both agendas and the counter
// (spec.md §4.6). Pre-scanned terminal reductors are reinstalled by the
// Parser after reset, from its cache — Column itself never remembers
// them.
func (c *Column) reset() {
	c.predecessors = map[string][]*Item{}
	c.reductors.clear()
	c.completeAgenda.Clear()
	c.predictQueue.Clear()
	c.completedStateCount = 0
}

// AddState implements spec.md §4.6's add_state: it finalizes item's
// EndCol, then either files it under predecessors (triggering a predict
// enqueue and any immediately-available spontaneous dot shifts) or files
// it as a newly completed state on the completed-states agenda.
func (c *Column) AddState(item *Item, g *grammar.Grammar) {
	item.EndCol = c

	if !item.Completed() {
		t := item.NextTerm()
		if len(c.predecessors[t]) == 0 && g.Has(t) {
			c.predictQueue.Enqueue(t)
		}
		c.predecessors[t] = append(c.predecessors[t], item)

		for _, span := range c.reductors.SpansFor(t) {
			c.spontaneousDotShift(item, span, g)
		}
		return
	}

	c.completedStateCount++
	c.completeAgenda.Enqueue(item)
}

// spontaneousDotShift is Earley's second completer trigger (spec.md §4.5,
// §9): a reductor span that already exists when a matching predecessor
// arrives advances that predecessor immediately, without waiting for the
// (already-drained) completer to run again.
func (c *Column) spontaneousDotShift(predecessor *Item, span *Span, g *grammar.Grammar) {
	advanced := &Item{
		Rule:         predecessor.Rule,
		Dot:          predecessor.Dot + 1,
		StartCol:     predecessor.StartCol,
		Predecessor:  predecessor,
		ReductorSpan: span,
	}
	span.EndCol.AddState(advanced, g)
}

// Items returns every predecessor (non-completed) item currently filed at
// this column, across all expected-symbol buckets.
func (c *Column) Items() []*Item {
	var out []*Item
	for _, items := range c.predecessors {
		out = append(out, items...)
	}
	return out
}

// SpanFor looks up the packed completed node for (lhs, length) at this
// column, if one has been inserted.
func (c *Column) SpanFor(lhs string, length int) (*Span, bool) {
	return c.reductors.Get(lhs, length)
}

// RecordReductor files a completed item as a reductor of the span keyed by
// (item.Rule.LHS, length) at this column, creating the span on first
// insertion. The caller is responsible for deciding what to do with the
// second return value (true iff the span already existed: local
// ambiguity, predecessors must not be notified again).
func (c *Column) RecordReductor(item *Item, length int) (*Span, bool) {
	return c.reductors.Insert(item, length)
}

// PredecessorsFor returns the items currently waiting on sym at this
// column, in FIFO insertion order.
func (c *Column) PredecessorsFor(sym string) []*Item {
	return c.predecessors[sym]
}

// Spans returns every span indexed under lhs at this column, across all
// lengths.
func (c *Column) Spans(lhs string) []*Span {
	return c.reductors.SpansFor(lhs)
}

// CompletedStateCount is the overflow-guard counter's current value.
func (c *Column) CompletedStateCount() int { return c.completedStateCount }

// DequeueComplete pops the next item off the completed-states agenda, per
// the decreasing-start-index, FIFO-within-index discipline.
func (c *Column) DequeueComplete() (*Item, bool) { return c.completeAgenda.Dequeue() }

// DequeuePredict pops the next nonterminal off the predict agenda, FIFO.
func (c *Column) DequeuePredict() (string, bool) { return c.predictQueue.Dequeue() }

// AgendasEmpty reports whether both agendas are drained.
func (c *Column) AgendasEmpty() bool {
	return c.completeAgenda.Empty() && c.predictQueue.Empty()
}

// DrainAgendas discards any pending agenda entries without processing
// them. Used when a parse is rejected by the overflow guard (spec.md §7).
func (c *Column) DrainAgendas() {
	c.completeAgenda.Clear()
	c.predictQueue.Clear()
}
