package queue

import (
	"container/heap"
)

// Frontier holds the not yet settled candidates of a search. Duplicates for the
// same node are allowed; the search drops stale ones when they are popped.
type Frontier interface {
	Push(e Entry)
	Pop() (Entry, bool) // removes the entry which comes first in MinCostFirst order
	Len() int
	Reset() // empties the frontier but may keep its memory
}

// entries implements heap.Interface and is ordered by MinCostFirst
type entries []Entry

func (h entries) Len() int           { return len(h) }
func (h entries) Less(i, j int) bool { return MinCostFirst{}.Less(h[i], h[j]) }
func (h entries) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entries) Push(item any) {
	*h = append(*h, item.(Entry))
}

func (h *entries) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// HeapFrontier is a Frontier on top of container/heap.
type HeapFrontier struct {
	items entries
}

func NewHeapFrontier(capacity int) *HeapFrontier {
	f := &HeapFrontier{items: make(entries, 0, capacity)}
	heap.Init(&f.items)
	return f
}

func (f *HeapFrontier) Push(e Entry) { heap.Push(&f.items, e) }
func (f *HeapFrontier) Len() int     { return f.items.Len() }
func (f *HeapFrontier) Reset()       { f.items = f.items[:0] }

func (f *HeapFrontier) Pop() (Entry, bool) {
	if len(f.items) == 0 {
		return Entry{}, false
	}
	return heap.Pop(&f.items).(Entry), true
}
