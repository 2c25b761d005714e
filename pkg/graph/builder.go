package graph

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Builder is the mutable counterpart of Graph. It is only used while a graph
// gets imported or converted; searches always run on the Graph returned by Build.
type Builder struct {
	edges       [][]Edge    // The edges of the graph. The first slice specifies to which node the edge belongs
	coordinates []orb.Point // optional node positions
	edgeCount   int         // the number of edges in the graph
}

func NewBuilder() *Builder {
	return &Builder{
		edges: make([][]Edge, 0),
	}
}

// Add a node without coordinates and return its id
func (b *Builder) AddNode() NodeId {
	b.edges = append(b.edges, nil)
	return NodeId(len(b.edges) - 1)
}

// Add a node located at p and return its id
func (b *Builder) AddNodeWithCoordinate(p orb.Point) NodeId {
	b.coordinates = append(b.coordinates, p)
	return b.AddNode()
}

// EnsureNodes grows the node set so that ids [0, n) are valid.
func (b *Builder) EnsureNodes(n int) {
	for len(b.edges) < n {
		b.edges = append(b.edges, nil)
	}
}

// Return the number of nodes added so far
func (b *Builder) NodeCount() int {
	return len(b.edges)
}

// Return the number of edges added so far
func (b *Builder) EdgeCount() int {
	return b.edgeCount
}

// Add an edge going from source to target with the given cost.
// If the edge already exists, the cheaper cost is kept. Returns true if the graph changed.
func (b *Builder) AddEdge(from, to NodeId, cost Cost) bool {
	if int(from) >= b.NodeCount() || int(to) >= b.NodeCount() {
		panic(fmt.Sprintf("Edge out of range %v -> %v", from, to))
	}

	edges := b.edges[from]
	for i := range edges {
		edge := &edges[i]
		if to == edge.To {
			if cost < edge.Cost {
				edge.Cost = cost
				return true
			}
			return false
		}
	}

	b.edges[from] = append(b.edges[from], MakeEdge(to, cost))
	b.edgeCount++
	return true
}

// Add edges in both directions
func (b *Builder) AddBidirectionalEdge(a, c NodeId, cost Cost) {
	b.AddEdge(a, c, cost)
	b.AddEdge(c, a, cost)
}

// Build freezes the builder into a validated Graph. The builder must not be used afterwards.
func (b *Builder) Build() (*Graph, error) {
	g := NewGraph(b.edges)
	if len(b.coordinates) > 0 {
		g = g.WithCoordinates(b.coordinates)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	b.edges = nil
	b.coordinates = nil
	return g, nil
}
