package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// fmi parse states
const (
	PARSE_NODE_COUNT = iota
	PARSE_EDGE_COUNT = iota
	PARSE_NODES      = iota
	PARSE_EDGES      = iota
)

var ErrInvalidFmi = errors.New("invalid fmi graph")

// AsString returns the graph in fmi format. Nodes without coordinates are written as a bare id.
func AsString(g *Graph) string {
	var sb strings.Builder
	WriteFmi(&sb, g)
	return sb.String()
}

func WriteFmi(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)

	// write number of nodes and number of edges
	fmt.Fprintf(bw, "%v\n", g.NodeCount())
	fmt.Fprintf(bw, "%v\n", g.EdgeCount())

	bw.WriteString("#Nodes\n")
	// list all nodes structured as "id lat lon"
	for i := 0; i < g.NodeCount(); i++ {
		if p, ok := g.Coordinate(NodeId(i)); ok {
			fmt.Fprintf(bw, "%v %v %v\n", i, p.Lat(), p.Lon())
		} else {
			fmt.Fprintf(bw, "%v\n", i)
		}
	}

	bw.WriteString("#Edges\n")
	// list all edges structured as "fromId targetId cost"
	for i := 0; i < g.NodeCount(); i++ {
		for _, e := range g.Neighbors(NodeId(i)) {
			fmt.Fprintf(bw, "%v %v %v\n", i, e.To, e.Cost)
		}
	}
	return bw.Flush()
}

func WriteFmiFile(g *Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFmi(file, g)
}

func ReadFmi(r io.Reader) (*Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	numNodes := 0
	numEdges := 0
	lineNumber := 0

	b := NewBuilder()
	id2index := make(map[int]NodeId)
	withCoordinates := 0

	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrInvalidFmi, lineNumber, fmt.Sprintf(format, args...))
	}

	parseState := PARSE_NODE_COUNT
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_NODE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil || val < 0 {
				return nil, invalid("node count %q", line)
			}
			numNodes = val
			parseState = PARSE_EDGE_COUNT
		case PARSE_EDGE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil || val < 0 {
				return nil, invalid("edge count %q", line)
			}
			numEdges = val
			parseState = PARSE_NODES
			if numNodes == 0 {
				parseState = PARSE_EDGES
			}
		case PARSE_NODES:
			fields := strings.Fields(line)
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, invalid("node id %q", fields[0])
			}
			if _, exists := id2index[id]; exists {
				return nil, invalid("duplicate node %d", id)
			}
			switch len(fields) {
			case 1:
				id2index[id] = b.AddNode()
			case 3:
				lat, latErr := strconv.ParseFloat(fields[1], 64)
				lon, lonErr := strconv.ParseFloat(fields[2], 64)
				if latErr != nil || lonErr != nil {
					return nil, invalid("coordinate %q", line)
				}
				id2index[id] = b.AddNodeWithCoordinate(orb.Point{lon, lat})
				withCoordinates++
			default:
				return nil, invalid("node %q", line)
			}
			if b.NodeCount() == numNodes {
				parseState = PARSE_EDGES
			}
		case PARSE_EDGES:
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, invalid("edge %q", line)
			}
			from, fromErr := strconv.Atoi(fields[0])
			to, toErr := strconv.Atoi(fields[1])
			cost, costErr := strconv.ParseUint(fields[2], 10, 16)
			if fromErr != nil || toErr != nil || costErr != nil {
				return nil, invalid("edge %q", line)
			}
			fromIndex, fromOk := id2index[from]
			toIndex, toOk := id2index[to]
			if !fromOk || !toOk {
				return nil, invalid("edge %v -> %v references an unknown node", from, to)
			}
			b.AddEdge(fromIndex, toIndex, Cost(cost))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if b.NodeCount() != numNodes {
		return nil, fmt.Errorf("%w: expected %d nodes, parsed %d", ErrInvalidFmi, numNodes, b.NodeCount())
	}
	// duplicate edges are merged during import, so fewer edges than announced are fine
	if b.EdgeCount() > numEdges {
		return nil, fmt.Errorf("%w: expected %d edges, parsed %d", ErrInvalidFmi, numEdges, b.EdgeCount())
	}
	if withCoordinates != 0 && withCoordinates != numNodes {
		return nil, fmt.Errorf("%w: %d of %d nodes have coordinates", ErrInvalidFmi, withCoordinates, numNodes)
	}

	return b.Build()
}

func ParseFmi(fmi string) (*Graph, error) {
	return ReadFmi(strings.NewReader(fmi))
}

func ReadFmiFile(filename string) (*Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadFmi(bufio.NewReader(file))
}
