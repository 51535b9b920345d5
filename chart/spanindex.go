package chart

// spanIndex is the per-column (lhs -> length -> Span) lookup spec.md §4.5-
// §4.6 describes (component C6): owned by the column where its spans'
// reductors start, keyed by the completed span's length so that
// spontaneous dot shift can find "every span currently indexed under the
// symbol a predecessor expects" in one map lookup.
type spanIndex struct {
	byLHS map[string]map[int]*Span
}

func newSpanIndex() *spanIndex {
	return &spanIndex{byLHS: map[string]map[int]*Span{}}
}

// Get returns the span for (lhs, length), if one exists.
func (si *spanIndex) Get(lhs string, length int) (*Span, bool) {
	lengths, ok := si.byLHS[lhs]
	if !ok {
		return nil, false
	}
	span, ok := lengths[length]
	return span, ok
}

// SpansFor returns every span indexed under lhs, across all lengths —
// the set spontaneous dot shift iterates when a new predecessor arrives
// expecting lhs.
func (si *spanIndex) SpansFor(lhs string) []*Span {
	lengths := si.byLHS[lhs]
	out := make([]*Span, 0, len(lengths))
	for _, span := range lengths {
		out = append(out, span)
	}
	return out
}

// Insert records item as a reductor of the span keyed by
// (item.Rule.LHS, length), creating the span on first insertion. The
// second return value is true iff the span already existed (local
// ambiguity: the caller must not re-propagate to predecessors).
func (si *spanIndex) Insert(item *Item, length int) (*Span, bool) {
	lhs := item.Rule.LHS
	lengths, ok := si.byLHS[lhs]
	if !ok {
		lengths = map[int]*Span{}
		si.byLHS[lhs] = lengths
	}
	span, existed := lengths[length]
	if !existed {
		span = newSpan(lhs, item.StartCol, item.EndCol)
		lengths[length] = span
	}
	span.Add(item)
	return span, existed
}

func (si *spanIndex) clear() { si.byLHS = map[string]map[int]*Span{} }
