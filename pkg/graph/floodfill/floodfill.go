// Package floodfill computes, for one origin, the travel time to every node
// which can be reached within a time limit.
//
// The search is a label-setting Dijkstra without decrease-key: every relaxed
// edge pushes a new frontier entry, and entries for nodes which are already
// settled are dropped when they are popped. The frontier therefore holds at
// most 1 + the summed out-degree of all settled nodes.
package floodfill

import (
	"errors"
	"fmt"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/queue"
)

// DefaultTimeLimit is one hour.
const DefaultTimeLimit graph.Cost = 3600

var ErrInvalidStart = errors.New("start node is not contained in the graph")

// ResultMap holds the minimal cost of every settled node.
type ResultMap map[graph.NodeId]graph.Cost

type SearchKPIs struct {
	Pushes        int // frontier pushes, including the origin
	Pops          int // frontier pops
	StalePops     int // pops of nodes which were already settled
	OverLimitPops int // pops above the time limit
	Settled       int // number of settled nodes
	MaxFrontier   int // largest frontier length seen
}

// FloodFiller runs searches on one graph. It reuses its frontier between
// runs, so it must not be used by more than one goroutine at a time. The graph
// itself can be shared by any number of FloodFillers.
type FloodFiller struct {
	g         *graph.Graph
	frontier  queue.Frontier
	earlyExit bool
	kpis      SearchKPIs
}

type Option func(*FloodFiller)

// WithFrontier selects the container for the frontier.
func WithFrontier(factory func() queue.Frontier) Option {
	return func(f *FloodFiller) {
		f.frontier = factory()
	}
}

// WithoutEarlyExit keeps popping after the first entry above the limit.
// The result is the same, the search only does more work.
func WithoutEarlyExit() Option {
	return func(f *FloodFiller) {
		f.earlyExit = false
	}
}

func NewFloodFiller(g *graph.Graph, opts ...Option) *FloodFiller {
	f := &FloodFiller{g: g, earlyExit: true}
	for _, opt := range opts {
		opt(f)
	}
	if f.frontier == nil {
		f.frontier = queue.NewMaxHeapFrontier(1024)
	}
	return f
}

// FloodFill returns the minimal cost of every node reachable from start within limit.
// It panics if start is not a node of g.
func FloodFill(g *graph.Graph, start graph.NodeId, limit graph.Cost) ResultMap {
	return NewFloodFiller(g).Run(start, limit)
}

// TryRun is Run, but reports an invalid start as error instead of panicking.
func (f *FloodFiller) TryRun(start graph.NodeId, limit graph.Cost) (ResultMap, error) {
	if err := f.checkStart(start); err != nil {
		return nil, err
	}
	return f.Run(start, limit), nil
}

// Run computes the reachable nodes from start within limit.
// It panics if start is not a node of the graph.
func (f *FloodFiller) Run(start graph.NodeId, limit graph.Cost) ResultMap {
	if err := f.checkStart(start); err != nil {
		panic(err)
	}

	kpis := SearchKPIs{}
	f.frontier.Reset()
	f.frontier.Push(queue.Entry{Cost: 0, Node: start})
	kpis.Pushes++
	kpis.MaxFrontier = 1

	ceiling := uint32(limit)
	result := make(ResultMap)

	for {
		current, ok := f.frontier.Pop()
		if !ok {
			break
		}
		kpis.Pops++

		if _, settled := result[current.Node]; settled {
			kpis.StalePops++
			continue
		}
		if current.Cost > ceiling {
			kpis.OverLimitPops++
			if f.earlyExit {
				// everything left on the frontier is at least as expensive
				break
			}
			continue
		}

		// current.Cost <= limit, so it fits into graph.Cost
		result[current.Node] = graph.Cost(current.Cost)

		// a settled cost and an edge cost are both at most MaxCost, so the sum fits into uint32
		edges := f.g.Neighbors(current.Node)
		for _, e := range edges {
			f.frontier.Push(queue.Entry{Cost: current.Cost + uint32(e.Cost), Node: e.To})
		}
		kpis.Pushes += len(edges)
		if l := f.frontier.Len(); l > kpis.MaxFrontier {
			kpis.MaxFrontier = l
		}
	}

	kpis.Settled = len(result)
	f.kpis = kpis
	return result
}

// KPIs of the previous run
func (f *FloodFiller) Stats() SearchKPIs { return f.kpis }
func (f *FloodFiller) Graph() *graph.Graph { return f.g }

func (f *FloodFiller) checkStart(start graph.NodeId) error {
	if int(start) >= f.g.NodeCount() {
		return fmt.Errorf("%w: %d (node count %d)", ErrInvalidStart, start, f.g.NodeCount())
	}
	return nil
}
