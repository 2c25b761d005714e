package pbf

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/qedus/osmpbf"
	"golang.org/x/sync/errgroup"
)

var ErrNoWalkableWays = errors.New("extract contains no walkable ways")

// RoadImporter reads the walkable ways of a PBF extract and the coordinates
// of the nodes they reference. The file is decoded twice: ways first, then
// only the referenced nodes.
type RoadImporter struct {
	filename string
	roads    []*road.Segment
	nodes    map[osm.NodeID]orb.Point
}

func NewRoadImporter(filename string) *RoadImporter {
	return &RoadImporter{
		filename: filename,
		roads:    make([]*road.Segment, 0),
		nodes:    make(map[osm.NodeID]orb.Point),
	}
}

func (ri *RoadImporter) Import(ctx context.Context) error {
	if err := ri.collectRoads(ctx); err != nil {
		return err
	}
	if len(ri.roads) == 0 {
		return ErrNoWalkableWays
	}
	return ri.collectNodes(ctx)
}

func (ri *RoadImporter) Roads() []*road.Segment {
	return ri.roads
}

func (ri *RoadImporter) Nodes() map[osm.NodeID]orb.Point {
	return ri.nodes
}

// Graph converts the imported roads into a walking graph.
func (ri *RoadImporter) Graph() (*graph.Graph, error) {
	return BuildGraph(ri.roads, ri.nodes)
}

// decode runs handle for every entity of the file until the file ends,
// handle fails or ctx is cancelled.
func (ri *RoadImporter) decode(ctx context.Context, handle func(v any) error) error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := handle(v); err != nil {
			return err
		}
	}
}

func (ri *RoadImporter) collectRoads(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	roadsChan := make(chan *road.Segment, 1000)

	group.Go(func() error {
		for segment := range roadsChan {
			ri.roads = append(ri.roads, segment)
		}
		return nil
	})
	group.Go(func() error {
		defer close(roadsChan)
		return ri.decode(ctx, func(v any) error {
			way, ok := v.(*osmpbf.Way)
			if !ok || len(way.NodeIDs) < 2 || !road.Walkable(way.Tags) {
				return nil
			}
			roadsChan <- road.NewSegment(way.ID, way.Tags, way.NodeIDs)
			return nil
		})
	})
	if err := group.Wait(); err != nil {
		return err
	}

	for _, segment := range ri.roads {
		for _, id := range segment.Nodes {
			ri.nodes[id] = orb.Point{}
		}
	}
	return nil
}

func (ri *RoadImporter) collectNodes(ctx context.Context) error {
	found := make(map[osm.NodeID]orb.Point, len(ri.nodes))
	err := ri.decode(ctx, func(v any) error {
		node, ok := v.(*osmpbf.Node)
		if !ok {
			return nil
		}
		id := osm.NodeID(node.ID)
		if _, referenced := ri.nodes[id]; referenced {
			found[id] = orb.Point{node.Lon, node.Lat}
		}
		return nil
	})
	if err != nil {
		return err
	}
	// nodes missing from the extract are dropped
	ri.nodes = found
	return nil
}

// BuildGraph creates a node for every road node with a known coordinate and
// connects consecutive nodes of a road in both directions. Ids are assigned
// in order of first appearance.
func BuildGraph(roads []*road.Segment, nodes map[osm.NodeID]orb.Point) (*graph.Graph, error) {
	b := graph.NewBuilder()
	index := make(map[osm.NodeID]graph.NodeId, len(nodes))

	nodeIndex := func(id osm.NodeID) (graph.NodeId, orb.Point, bool) {
		p, ok := nodes[id]
		if !ok {
			return 0, p, false
		}
		i, ok := index[id]
		if !ok {
			i = b.AddNodeWithCoordinate(p)
			index[id] = i
		}
		return i, p, true
	}

	for _, segment := range roads {
		speed := segment.Speed()
		for i := 0; i < len(segment.Nodes)-1; i++ {
			if segment.Nodes[i] == segment.Nodes[i+1] {
				continue
			}
			from, a, okFrom := nodeIndex(segment.Nodes[i])
			to, c, okTo := nodeIndex(segment.Nodes[i+1])
			if !okFrom || !okTo {
				continue
			}
			// oneway restricts vehicles, pedestrians walk both ways
			b.AddBidirectionalEdge(from, to, road.TravelTime(a, c, speed))
		}
	}
	return b.Build()
}
