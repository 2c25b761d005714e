package floodfill

import (
	"slices"

	"github.com/natevvv/osm-floodfill/pkg/graph"
)

// Nodes returns the settled nodes in ascending id order.
func (r ResultMap) Nodes() []graph.NodeId {
	nodes := make([]graph.NodeId, 0, len(r))
	for node := range r {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	return nodes
}

// MaxCost returns the largest settled cost, 0 for an empty result.
func (r ResultMap) MaxCost() graph.Cost {
	var m graph.Cost
	for _, cost := range r {
		m = max(m, cost)
	}
	return m
}
