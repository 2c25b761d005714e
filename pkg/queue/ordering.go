package queue

import (
	"cmp"

	"github.com/natevvv/osm-floodfill/pkg/graph"
)

// Entry is a candidate on the search frontier: Node reached at accumulated Cost.
// The cost is wider than graph.Cost so that cost + edge cost cannot wrap.
type Entry struct {
	Cost uint32
	Node graph.NodeId
}

// MinCostFirst is the extraction order of the frontier: ascending by cost,
// equal costs ascending by node id. The node id only makes ties deterministic.
type MinCostFirst struct{}

// Compare returns a negative number if a has to leave the frontier before b.
func (MinCostFirst) Compare(a, b Entry) int {
	if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
		return c
	}
	return cmp.Compare(a.Node, b.Node)
}

// Less reports whether a has to leave the frontier before b.
func (o MinCostFirst) Less(a, b Entry) bool {
	return o.Compare(a, b) < 0
}

// Inverted returns the relation for max-ordered containers.
func (o MinCostFirst) Inverted() Inverted {
	return Inverted{order: o}
}

// Inverted ranks the cheapest entry as the greatest one, so a container
// which extracts its maximum yields entries in MinCostFirst order.
type Inverted struct {
	order MinCostFirst
}

func (i Inverted) Less(a, b Entry) bool {
	return i.order.Compare(b, a) < 0
}
