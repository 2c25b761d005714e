package graph

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// The blob is the bincode encoding of a Vec<Vec<Edge>>: every length is a
// little-endian u64, every edge is its target (u32) followed by its cost (u16).
const (
	lengthSize = 8
	edgeSize   = 6

	// upper bound for a single up-front allocation while reading untrusted lengths
	allocationChunk = 1 << 16
)

var ErrCorruptBlob = errors.New("corrupt graph blob")

func WriteBlob(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	var buf [lengthSize]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(g.NodeCount()))
	if _, err := bw.Write(buf[:]); err != nil {
		return err
	}
	for i := 0; i < g.NodeCount(); i++ {
		edges := g.Neighbors(NodeId(i))
		binary.LittleEndian.PutUint64(buf[:], uint64(len(edges)))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
		for _, e := range edges {
			binary.LittleEndian.PutUint32(buf[0:4], uint32(e.To))
			binary.LittleEndian.PutUint16(buf[4:6], uint16(e.Cost))
			if _, err := bw.Write(buf[:edgeSize]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func WriteBlobFile(g *Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteBlob(file, g); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadBlob decodes a graph written by WriteBlob. The returned graph is validated.
func ReadBlob(r io.Reader) (*Graph, error) {
	var buf [lengthSize]byte

	readLength := func() (uint64, error) {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	}
	corrupt := func(err error) error {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("%w: %w", ErrCorruptBlob, err)
	}

	nodeCount, err := readLength()
	if err != nil {
		return nil, corrupt(err)
	}
	if nodeCount > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: node count %d exceeds the id range", ErrCorruptBlob, nodeCount)
	}

	offsets := make([]int, 1, min(nodeCount, allocationChunk)+1)
	arcs := make([]Edge, 0, allocationChunk)
	var maxEdgeCost Cost

	for i := uint64(0); i < nodeCount; i++ {
		edgeCount, err := readLength()
		if err != nil {
			return nil, corrupt(err)
		}
		if edgeCount > math.MaxUint32 {
			return nil, fmt.Errorf("%w: node %d claims %d edges", ErrCorruptBlob, i, edgeCount)
		}
		for j := uint64(0); j < edgeCount; j++ {
			if _, err := io.ReadFull(r, buf[:edgeSize]); err != nil {
				return nil, corrupt(err)
			}
			e := Edge{
				To:   NodeId(binary.LittleEndian.Uint32(buf[0:4])),
				Cost: Cost(binary.LittleEndian.Uint16(buf[4:6])),
			}
			if e.Cost > maxEdgeCost {
				maxEdgeCost = e.Cost
			}
			arcs = append(arcs, e)
		}
		offsets = append(offsets, len(arcs))
	}

	g := &Graph{arcs: arcs, offsets: offsets, maxEdgeCost: maxEdgeCost}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func ReadBlobFile(filename string) (*Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadBlob(bufio.NewReaderSize(file, 1<<20))
}
