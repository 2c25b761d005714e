// Package isochrone puts the flood fill on a map: it finds the node closest
// to a position and renders the reached nodes as GeoJSON.
package isochrone

import (
	"errors"
	"fmt"
	"sync"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

var ErrNoCoordinates = errors.New("graph has no node coordinates")

// node implements orb.Pointer for the quadtree
type node struct {
	id    graph.NodeId
	point orb.Point
}

func (n node) Point() orb.Point { return n.point }

// Service answers reachability queries on one graph. It is safe for concurrent use.
type Service struct {
	graph       *graph.Graph
	index       *quadtree.Quadtree // nil if the graph has no coordinates
	floodFiller sync.Pool
}

// Create a new service. Graphs without coordinates are accepted, but only
// support queries by node id.
func NewService(g *graph.Graph) (*Service, error) {
	s := &Service{graph: g}
	s.floodFiller.New = func() any { return floodfill.NewFloodFiller(g) }

	if !g.HasCoordinates() || g.NodeCount() == 0 {
		return s, nil
	}

	coordinates := g.Coordinates()
	s.index = quadtree.New(orb.MultiPoint(coordinates).Bound())
	for i, p := range coordinates {
		if err := s.index.Add(node{id: graph.NodeId(i), point: p}); err != nil {
			return nil, fmt.Errorf("index node %d: %w", i, err)
		}
	}
	return s, nil
}

func (s *Service) Graph() *graph.Graph { return s.graph }

func (s *Service) HasCoordinates() bool { return s.index != nil }

// NearestNode returns the node closest to p. Distances are planar in degrees,
// which is good enough to snap a position onto a dense street network.
func (s *Service) NearestNode(p orb.Point) (graph.NodeId, error) {
	if s.index == nil {
		return 0, ErrNoCoordinates
	}
	nearest := s.index.Find(p)
	if nearest == nil {
		return 0, ErrNoCoordinates
	}
	return nearest.(node).id, nil
}

// Reach runs a flood fill from origin.
func (s *Service) Reach(origin graph.NodeId, limit graph.Cost) (*Result, error) {
	f := s.floodFiller.Get().(*floodfill.FloodFiller)
	defer s.floodFiller.Put(f)

	costs, err := f.TryRun(origin, limit)
	if err != nil {
		return nil, err
	}
	return &Result{Origin: origin, Limit: limit, Costs: costs, KPIs: f.Stats(), graph: s.graph}, nil
}

// ReachFrom snaps p to the nearest node and runs a flood fill from there.
func (s *Service) ReachFrom(p orb.Point, limit graph.Cost) (*Result, error) {
	origin, err := s.NearestNode(p)
	if err != nil {
		return nil, err
	}
	return s.Reach(origin, limit)
}
