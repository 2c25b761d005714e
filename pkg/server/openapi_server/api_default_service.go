package openapi_server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/natevvv/osm-floodfill/pkg/isochrone"
	"github.com/paulmach/orb"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
type DefaultApiService struct {
	isochrone *isochrone.Service
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(s *isochrone.Service) DefaultApiServicer {
	return &DefaultApiService{isochrone: s}
}

func (s *DefaultApiService) GetGraph(ctx context.Context) (ImplResponse, error) {
	stats := graph.Summary(s.isochrone.Graph())
	return Response(http.StatusOK, GraphInfo{
		Nodes:       stats.Nodes,
		Edges:       stats.Edges,
		MaxEdgeCost: int(stats.MaxEdgeCost),
		Coordinates: stats.Coordinates,
	}), nil
}

func (s *DefaultApiService) GetNode(ctx context.Context, nodeId int64) (ImplResponse, error) {
	g := s.isochrone.Graph()
	if nodeId < 0 || nodeId >= int64(g.NodeCount()) {
		return Response(http.StatusNotFound, fmt.Sprintf("Unknown node %d", nodeId)), nil
	}
	id := graph.NodeId(nodeId)

	node := Node{Id: uint32(id), Edges: make([]NodeCost, 0)}
	for _, e := range g.Neighbors(id) {
		node.Edges = append(node.Edges, NodeCost{Node: uint32(e.To), Cost: int(e.Cost)})
	}
	if p, ok := g.Coordinate(id); ok {
		node.Point = &Point{Lat: p.Lat(), Lon: p.Lon()}
	}
	return Response(http.StatusOK, node), nil
}

// ComputeFloodFill - Compute the travel time to every node reachable within the time limit
func (s *DefaultApiService) ComputeFloodFill(ctx context.Context, req FloodFillRequest) (ImplResponse, error) {
	limit, ok := timeLimit(req.TimeLimit)
	if !ok {
		return Response(http.StatusBadRequest, fmt.Sprintf("timeLimit must be within [0, %d]", graph.MaxCost)), nil
	}
	if *req.Origin < 0 || *req.Origin >= int64(s.isochrone.Graph().NodeCount()) {
		return Response(http.StatusBadRequest, fmt.Sprintf("Unknown origin %d", *req.Origin)), nil
	}

	result, err := s.isochrone.Reach(graph.NodeId(*req.Origin), limit)
	if err != nil {
		return Response(http.StatusBadRequest, err.Error()), nil
	}

	body := FloodFillResult{
		Origin:    uint32(result.Origin),
		TimeLimit: int(limit),
		Reached:   len(result.Costs),
		Costs:     make([]NodeCost, 0, len(result.Costs)),
	}
	for _, node := range result.Costs.Nodes() {
		body.Costs = append(body.Costs, NodeCost{Node: uint32(node), Cost: int(result.Costs[node])})
	}
	return Response(http.StatusOK, body), nil
}

// ComputeIsochrone - Compute the reachable area around a position as GeoJSON
func (s *DefaultApiService) ComputeIsochrone(ctx context.Context, req IsochroneRequest) (ImplResponse, error) {
	if !s.isochrone.HasCoordinates() {
		return Response(http.StatusNotImplemented, "The loaded graph has no coordinates"), nil
	}
	limit, ok := timeLimit(req.TimeLimit)
	if !ok {
		return Response(http.StatusBadRequest, fmt.Sprintf("timeLimit must be within [0, %d]", graph.MaxCost)), nil
	}

	result, err := s.isochrone.ReachFrom(orb.Point{req.Point.Lon, req.Point.Lat}, limit)
	if err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}
	fc, err := result.FeatureCollection()
	if err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}
	return Response(http.StatusOK, fc), nil
}

func timeLimit(requested *int) (graph.Cost, bool) {
	if requested == nil {
		return floodfill.DefaultTimeLimit, true
	}
	if *requested < 0 || *requested > int(graph.MaxCost) {
		return 0, false
	}
	return graph.Cost(*requested), true
}
