package chart

// Span is a packed local-ambiguity node (spec.md §3, §4.5, component C5):
// the set of completed Items sharing (LHS, start column, end column).
// Every Span is created the first time a completed item with that
// signature is inserted; later duplicates are appended (local ambiguity)
// and never re-propagated to predecessors.
type Span struct {
	LHS       string
	StartCol  *Column
	EndCol    *Column
	Reductors []*Item
}

func newSpan(lhs string, start, end *Column) *Span {
	return &Span{LHS: lhs, StartCol: start, EndCol: end}
}

// Add appends item as a reductor. It never dedupes: each reductor is a
// distinct derivation.
func (s *Span) Add(item *Item) { s.Reductors = append(s.Reductors, item) }

// Length is end - start, the span's coverage in tokens.
func (s *Span) Length() int { return s.EndCol.Index - s.StartCol.Index }

// IsAmbiguous reports whether this span packs more than one derivation.
func (s *Span) IsAmbiguous() bool { return len(s.Reductors) > 1 }
