package isochrone

import (
	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type Result struct {
	Origin graph.NodeId
	Limit  graph.Cost
	Costs  floodfill.ResultMap
	KPIs   floodfill.SearchKPIs

	graph *graph.Graph
}

// FeatureCollection renders every reached node as a point feature with the
// properties "node" and "cost". Features are ordered by node id.
func (r *Result) FeatureCollection() (*geojson.FeatureCollection, error) {
	if !r.graph.HasCoordinates() {
		return nil, ErrNoCoordinates
	}
	fc := geojson.NewFeatureCollection()
	for _, id := range r.Costs.Nodes() {
		p, _ := r.graph.Coordinate(id)
		f := geojson.NewFeature(p)
		f.Properties["node"] = id
		f.Properties["cost"] = r.Costs[id]
		if id == r.Origin {
			f.Properties["origin"] = true
		}
		fc.Append(f)
	}
	return fc, nil
}

// Bound of all reached nodes. The origin is always reached, so the bound is never empty.
func (r *Result) Bound() (orb.Bound, error) {
	if !r.graph.HasCoordinates() {
		return orb.Bound{}, ErrNoCoordinates
	}
	origin, _ := r.graph.Coordinate(r.Origin)
	bound := origin.Bound()
	for id := range r.Costs {
		p, _ := r.graph.Coordinate(id)
		bound = bound.Extend(p)
	}
	return bound, nil
}

// Histogram counts the reached nodes per cost band of width step:
// bucket i holds the nodes with cost in [i*step, (i+1)*step).
func (r *Result) Histogram(step graph.Cost) []int {
	if step == 0 {
		step = 1
	}
	buckets := make([]int, int(r.Limit)/int(step)+1)
	for _, cost := range r.Costs {
		buckets[int(cost)/int(step)]++
	}
	return buckets
}
