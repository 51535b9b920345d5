package chart

// MaxHeap is a binary max-heap of integers (spec.md §4.3, component C3). It
// backs the completed-states agenda's key ordering: completion is driven by
// decreasing start-column index, Stolcke-style.
type MaxHeap struct {
	data []int
}

// NewMaxHeap returns an empty heap.
func NewMaxHeap() *MaxHeap {
	return &MaxHeap{}
}

// Count returns the number of keys currently in the heap.
func (h *MaxHeap) Count() int { return len(h.data) }

// Clear empties the heap.
func (h *MaxHeap) Clear() { h.data = h.data[:0] }

// PeekMax returns the largest key without removing it.
func (h *MaxHeap) PeekMax() (int, bool) {
	if len(h.data) == 0 {
		return 0, false
	}
	return h.data[0], true
}

// Add inserts v into the heap. Callers are responsible for not inserting a
// key twice (the completed-states agenda only calls Add for a start index
// it has not already seen).
func (h *MaxHeap) Add(v int) {
	h.data = append(h.data, v)
	h.siftUp(len(h.data) - 1)
}

// PopMax removes and returns the largest key.
func (h *MaxHeap) PopMax() (int, bool) {
	if len(h.data) == 0 {
		return 0, false
	}
	max := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	h.data = h.data[:last]
	if len(h.data) > 0 {
		h.siftDown(0)
	}
	return max, true
}

func (h *MaxHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.data[parent] >= h.data[i] {
			break
		}
		h.data[parent], h.data[i] = h.data[i], h.data[parent]
		i = parent
	}
}

func (h *MaxHeap) siftDown(i int) {
	n := len(h.data)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && h.data[left] > h.data[largest] {
			largest = left
		}
		if right < n && h.data[right] > h.data[largest] {
			largest = right
		}
		if largest == i {
			break
		}
		h.data[i], h.data[largest] = h.data[largest], h.data[i]
		i = largest
	}
}
