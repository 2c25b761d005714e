package queue

// MaxHeapFrontier is a binary max-heap. It is ordered by MinCostFirst.Inverted(),
// so its maximum, the root, is always the cheapest entry.
// Entries are stored by value to keep pushes free of allocations once the
// backing slice has grown.
type MaxHeapFrontier struct {
	items []Entry
	order Inverted
}

func NewMaxHeapFrontier(capacity int) *MaxHeapFrontier {
	return &MaxHeapFrontier{
		items: make([]Entry, 0, capacity),
		order: MinCostFirst{}.Inverted(),
	}
}

func (h *MaxHeapFrontier) Len() int { return len(h.items) }
func (h *MaxHeapFrontier) Reset()   { h.items = h.items[:0] }

func (h *MaxHeapFrontier) Push(e Entry) {
	h.items = append(h.items, e)
	h.up(len(h.items) - 1)
}

func (h *MaxHeapFrontier) Pop() (Entry, bool) {
	n := len(h.items) - 1
	if n < 0 {
		return Entry{}, false
	}
	top := h.items[0]
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.down(0)
	}
	return top, true
}

// Peek returns the root without removing it
func (h *MaxHeapFrontier) Peek() (Entry, bool) {
	if len(h.items) == 0 {
		return Entry{}, false
	}
	return h.items[0], true
}

func (h *MaxHeapFrontier) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.order.Less(h.items[parent], h.items[i]) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *MaxHeapFrontier) down(i int) {
	n := len(h.items)
	for {
		largest := i
		left := 2*i + 1
		right := left + 1
		if left < n && h.order.Less(h.items[largest], h.items[left]) {
			largest = left
		}
		if right < n && h.order.Less(h.items[largest], h.items[right]) {
			largest = right
		}
		if largest == i {
			return
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}
