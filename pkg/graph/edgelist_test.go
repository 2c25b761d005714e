package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertEdgeList(t *testing.T) {
	input := `{
		"0": [[100, 1, 0, 0, 0]],
		"1": [[50, 2, 0, 0, 0], [10, 0, 0, 0, 0]]
	}`
	g, err := ConvertEdgeList(strings.NewReader(input), 0)
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, []Edge{{To: 1, Cost: 100}}, g.Neighbors(0))
	assert.Equal(t, []Edge{{To: 2, Cost: 50}, {To: 0, Cost: 10}}, g.Neighbors(1))
	assert.Empty(t, g.Neighbors(2))
}

func TestConvertEdgeListFixedNodeCount(t *testing.T) {
	g, err := ConvertEdgeList(strings.NewReader(`{"0": [[1, 1, 0, 0, 0]]}`), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, g.NodeCount())
}

func TestConvertEdgeListErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		nodeCount int
	}{
		{"not json", `[`, 0},
		{"bad key", `{"a": []}`, 0},
		{"negative key", `{"-1": []}`, 0},
		{"short record", `{"0": [[1]]}`, 0},
		{"cost overflow", `{"0": [[65536, 1, 0, 0, 0]]}`, 0},
		{"negative target", `{"0": [[1, -1, 0, 0, 0]]}`, 0},
		{"exceeds node count", `{"0": [[1, 4, 0, 0, 0]]}`, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertEdgeList(strings.NewReader(tt.input), tt.nodeCount)
			assert.ErrorIs(t, err, ErrInvalidEdgeList)
		})
	}
}
