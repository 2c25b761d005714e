package graph

import (
	"path/filepath"
	"strings"
)

// Load reads a graph from disk. Files with the extension .fmi are parsed as
// text, everything else is treated as a binary blob.
func Load(filename string) (*Graph, error) {
	if strings.EqualFold(filepath.Ext(filename), ".fmi") {
		return ReadFmiFile(filename)
	}
	return ReadBlobFile(filename)
}

// Save writes the graph in the format implied by the file extension (see Load).
func Save(g *Graph, filename string) error {
	if strings.EqualFold(filepath.Ext(filename), ".fmi") {
		return WriteFmiFile(g, filename)
	}
	return WriteBlobFile(g, filename)
}
