package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// NodeId is a dense node index in [0, NodeCount).
type NodeId uint32

// Cost is a travel time in seconds.
type Cost uint16

const MaxCost = Cost(math.MaxUint16)

var (
	ErrDanglingEdge    = errors.New("edge target is not contained in the graph")
	ErrCoordinateCount = errors.New("coordinate count does not match node count")
)

// Edge is a directed arc with its travel time.
type Edge struct {
	To   NodeId
	Cost Cost
}

func MakeEdge(to NodeId, cost Cost) Edge {
	return Edge{To: to, Cost: cost}
}

// Graph is a static adjacency array. The arcs of node i are
// arcs[offsets[i]:offsets[i+1]]. A Graph is never modified after construction
// and can be shared by any number of concurrent searches.
type Graph struct {
	arcs        []Edge
	offsets     []int
	coordinates []orb.Point // optional, indexed by NodeId
	maxEdgeCost Cost
}

// Create a Graph from one edge list per node. The index into edgesPerNode is the NodeId.
func NewGraph(edgesPerNode [][]Edge) *Graph {
	total := 0
	for _, edges := range edgesPerNode {
		total += len(edges)
	}

	g := &Graph{
		arcs:    make([]Edge, 0, total),
		offsets: make([]int, len(edgesPerNode)+1),
	}
	for i, edges := range edgesPerNode {
		for _, e := range edges {
			if e.Cost > g.maxEdgeCost {
				g.maxEdgeCost = e.Cost
			}
		}
		g.arcs = append(g.arcs, edges...)
		// set stop-offset
		g.offsets[i+1] = len(g.arcs)
	}
	return g
}

// WithCoordinates returns a copy of the graph which shares the arcs of g and
// carries the given node coordinates.
func (g *Graph) WithCoordinates(coordinates []orb.Point) *Graph {
	c := *g
	c.coordinates = coordinates
	return &c
}

// Get the outgoing edges of the given node
func (g *Graph) Neighbors(id NodeId) []Edge {
	if int(id) >= g.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return g.arcs[g.offsets[id]:g.offsets[id+1]]
}

// Returns the number of nodes in the graph
func (g *Graph) NodeCount() int {
	if len(g.offsets) == 0 {
		return 0
	}
	return len(g.offsets) - 1
}

// Returns the total number of edges in the graph
func (g *Graph) EdgeCount() int {
	return len(g.arcs)
}

func (g *Graph) MaxEdgeCost() Cost {
	return g.maxEdgeCost
}

func (g *Graph) HasCoordinates() bool {
	return g.coordinates != nil
}

// Coordinate returns the position of the node, if the graph carries coordinates.
func (g *Graph) Coordinate(id NodeId) (orb.Point, bool) {
	if int(id) >= len(g.coordinates) {
		return orb.Point{}, false
	}
	return g.coordinates[id], true
}

func (g *Graph) Coordinates() []orb.Point {
	return g.coordinates
}

// Validate checks that every edge target is a node of the graph and that
// coordinates, if present, cover exactly all nodes.
func (g *Graph) Validate() error {
	n := g.NodeCount()
	for from := 0; from < n; from++ {
		for _, e := range g.arcs[g.offsets[from]:g.offsets[from+1]] {
			if int(e.To) >= n {
				return fmt.Errorf("%w: %d -> %d (node count %d)", ErrDanglingEdge, from, e.To, n)
			}
		}
	}
	if g.coordinates != nil && len(g.coordinates) != n {
		return fmt.Errorf("%w: %d coordinates for %d nodes", ErrCoordinateCount, len(g.coordinates), n)
	}
	return nil
}
