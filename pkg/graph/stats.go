package graph

import "fmt"

type Stats struct {
	Nodes         int
	Edges         int
	MaxEdgeCost   Cost
	IsolatedNodes int // nodes without outgoing edges
	Coordinates   bool
}

func Summary(g *Graph) Stats {
	isolated := 0
	for i := 0; i < g.NodeCount(); i++ {
		if g.offsets[i] == g.offsets[i+1] {
			isolated++
		}
	}
	return Stats{
		Nodes:         g.NodeCount(),
		Edges:         g.EdgeCount(),
		MaxEdgeCost:   g.MaxEdgeCost(),
		IsolatedNodes: isolated,
		Coordinates:   g.HasCoordinates(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes: %d, edges: %d, max edge cost: %ds, nodes without edges: %d", s.Nodes, s.Edges, s.MaxEdgeCost, s.IsolatedNodes)
}
