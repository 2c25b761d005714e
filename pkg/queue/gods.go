package queue

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// GodsFrontier adapts the gods priority queue. It boxes every entry and is
// mostly useful as a baseline in benchmarks.
type GodsFrontier struct {
	queue *priorityqueue.Queue
}

func NewGodsFrontier() *GodsFrontier {
	order := MinCostFirst{}
	return &GodsFrontier{
		// the gods queue dequeues the smallest element according to the comparator
		queue: priorityqueue.NewWith(func(a, b interface{}) int {
			return order.Compare(a.(Entry), b.(Entry))
		}),
	}
}

func (f *GodsFrontier) Push(e Entry) { f.queue.Enqueue(e) }
func (f *GodsFrontier) Len() int     { return f.queue.Size() }
func (f *GodsFrontier) Reset()       { f.queue.Clear() }

func (f *GodsFrontier) Pop() (Entry, bool) {
	v, ok := f.queue.Dequeue()
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}
