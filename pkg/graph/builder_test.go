package graph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.EnsureNodes(3)
	assert.True(t, b.AddEdge(0, 1, 100))
	assert.True(t, b.AddEdge(0, 1, 80))
	assert.False(t, b.AddEdge(0, 1, 90))
	b.AddBidirectionalEdge(1, 2, 50)
	assert.Equal(t, 3, b.EdgeCount())

	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []Edge{{To: 1, Cost: 80}}, g.Neighbors(0))
	assert.Equal(t, []Edge{{To: 2, Cost: 50}}, g.Neighbors(1))
	assert.Equal(t, []Edge{{To: 1, Cost: 50}}, g.Neighbors(2))
}

func TestBuilderEdgeOutOfRange(t *testing.T) {
	b := NewBuilder()
	b.AddNode()
	assert.Panics(t, func() { b.AddEdge(0, 1, 1) })
}

func TestBuilderCoordinates(t *testing.T) {
	b := NewBuilder()
	a := b.AddNodeWithCoordinate(orb.Point{13.4, 52.5})
	c := b.AddNodeWithCoordinate(orb.Point{13.5, 52.6})
	b.AddEdge(a, c, 10)

	g, err := b.Build()
	require.NoError(t, err)
	p, ok := g.Coordinate(c)
	require.True(t, ok)
	assert.Equal(t, orb.Point{13.5, 52.6}, p)
}

func TestBuilderMixedCoordinates(t *testing.T) {
	b := NewBuilder()
	b.AddNodeWithCoordinate(orb.Point{13.4, 52.5})
	b.AddNode()

	_, err := b.Build()
	assert.ErrorIs(t, err, ErrCoordinateCount)
}
