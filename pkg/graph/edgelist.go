package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var ErrInvalidEdgeList = errors.New("invalid edge list")

// ConvertEdgeList reads a JSON edge list of the form
//
//	{"<from>": [[cost, to, ...], ...], ...}
//
// where only the first two elements of each record are used. If nodeCount is 0,
// the node count is derived from the largest id seen.
func ConvertEdgeList(r io.Reader, nodeCount int) (*Graph, error) {
	var input map[string][][]int64
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEdgeList, err)
	}

	maxId := int64(-1)
	edgesByNode := make(map[int64][]Edge, len(input))
	for key, records := range input {
		from, err := strconv.ParseInt(key, 10, 64)
		if err != nil || from < 0 || from > math.MaxUint32 {
			return nil, fmt.Errorf("%w: node key %q", ErrInvalidEdgeList, key)
		}
		maxId = max(maxId, from)

		edges := make([]Edge, 0, len(records))
		for _, record := range records {
			if len(record) < 2 {
				return nil, fmt.Errorf("%w: node %d has a record with %d fields", ErrInvalidEdgeList, from, len(record))
			}
			cost, to := record[0], record[1]
			if cost < 0 || cost > int64(MaxCost) {
				return nil, fmt.Errorf("%w: cost %d of %d -> %d is out of range", ErrInvalidEdgeList, cost, from, to)
			}
			if to < 0 || to > math.MaxUint32 {
				return nil, fmt.Errorf("%w: target %d of node %d", ErrInvalidEdgeList, to, from)
			}
			maxId = max(maxId, to)
			edges = append(edges, MakeEdge(NodeId(to), Cost(cost)))
		}
		edgesByNode[from] = edges
	}

	if nodeCount == 0 {
		nodeCount = int(maxId + 1)
	} else if maxId >= int64(nodeCount) {
		return nil, fmt.Errorf("%w: node %d exceeds the node count %d", ErrInvalidEdgeList, maxId, nodeCount)
	}

	edgesPerNode := make([][]Edge, nodeCount)
	for from, edges := range edgesByNode {
		edgesPerNode[from] = edges
	}

	g := NewGraph(edgesPerNode)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
