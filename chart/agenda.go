package chart

// completedAgenda is the completed-states agenda (spec.md §4.4, component
// C4): a MaxHeap of distinct start-column indices plus a per-index FIFO of
// completed Items. Dequeue always returns the oldest item at the largest
// start index, so items that start later complete first — essential for
// correct propagation when completions themselves trigger further
// completions at earlier start indices.
type completedAgenda struct {
	heap  *MaxHeap
	fifos map[int][]*Item
}

func newCompletedAgenda() *completedAgenda {
	return &completedAgenda{heap: NewMaxHeap(), fifos: map[int][]*Item{}}
}

func (a *completedAgenda) Enqueue(item *Item) {
	start := item.StartCol.Index
	if _, ok := a.fifos[start]; !ok {
		a.heap.Add(start)
	}
	a.fifos[start] = append(a.fifos[start], item)
}

func (a *completedAgenda) Dequeue() (*Item, bool) {
	start, ok := a.heap.PeekMax()
	if !ok {
		return nil, false
	}
	queue := a.fifos[start]
	item := queue[0]
	queue = queue[1:]
	if len(queue) == 0 {
		delete(a.fifos, start)
		a.heap.PopMax()
	} else {
		a.fifos[start] = queue
	}
	return item, true
}

func (a *completedAgenda) Empty() bool { return a.heap.Count() == 0 }

func (a *completedAgenda) Clear() {
	a.heap.Clear()
	a.fifos = map[int][]*Item{}
}

// predictAgenda is the per-column FIFO of nonterminals still awaiting
// Predict, with at most one entry per nonterminal per column.
type predictAgenda struct {
	queue []string
	seen  map[string]bool
}

func newPredictAgenda() *predictAgenda {
	return &predictAgenda{seen: map[string]bool{}}
}

// Enqueue adds sym if it is not already queued (or previously queued and
// drained) for this column. It returns false if sym was already seen.
func (a *predictAgenda) Enqueue(sym string) bool {
	if a.seen[sym] {
		return false
	}
	a.seen[sym] = true
	a.queue = append(a.queue, sym)
	return true
}

func (a *predictAgenda) Dequeue() (string, bool) {
	if len(a.queue) == 0 {
		return "", false
	}
	sym := a.queue[0]
	a.queue = a.queue[1:]
	return sym, true
}

func (a *predictAgenda) Empty() bool { return len(a.queue) == 0 }

func (a *predictAgenda) Clear() {
	a.queue = nil
	a.seen = map[string]bool{}
}
