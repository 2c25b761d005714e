package bench

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/natevvv/osm-floodfill/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ringFmi = `6
12
0
1
2
3
4
5
0 1 10
1 2 10
2 3 10
3 4 10
4 5 10
5 0 10
1 0 30
2 1 30
3 2 30
4 3 30
5 4 30
0 5 30
`

func ring(t *testing.T) *graph.Graph {
	g, err := graph.ParseFmi(ringFmi)
	require.NoError(t, err)
	return g
}

func TestOrigins(t *testing.T) {
	a := Origins(100, 6, 42)
	b := Origins(100, 6, 42)
	assert.Equal(t, a, b)
	for _, o := range a {
		assert.Less(t, int(o), 6)
	}
	assert.NotEqual(t, a, Origins(100, 6, 43))
}

func TestRun(t *testing.T) {
	g := ring(t)
	for _, workers := range []int{1, 3} {
		options := Options{Trials: 50, Limit: 25, Workers: workers, Seed: 7}
		runner := NewRunner(g, options)

		var mu sync.Mutex
		seen := make(map[int]bool)
		runner.OnTrial = func(trial Trial) {
			mu.Lock()
			defer mu.Unlock()
			seen[trial.Index] = true
		}

		report, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 50, report.Completed)
		assert.Len(t, seen, 50)

		expected := 0
		for _, origin := range Origins(50, g.NodeCount(), 7) {
			expected += len(floodfill.FloodFill(g, origin, 25))
		}
		assert.Equal(t, expected, report.Reached)
		assert.Equal(t, report.Reached, report.KPIs.Settled)
		assert.InDelta(t, float64(expected)/50, report.AverageReached(), 1e-9)
	}
}

func TestRunWithEveryFrontier(t *testing.T) {
	g := ring(t)
	var reached []int
	for _, name := range queue.Names() {
		factory, err := queue.Factory(name)
		require.NoError(t, err)
		report, err := NewRunner(g, Options{Trials: 20, Limit: 40, Seed: 3, Frontier: factory}).Run(context.Background())
		require.NoError(t, err)
		reached = append(reached, report.Reached)
	}
	for _, r := range reached {
		assert.Equal(t, reached[0], r)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(ring(t), Options{Trials: 1000, Limit: 3600, Seed: 1}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, report.Completed, 1000)
}

func TestRunEmptyGraph(t *testing.T) {
	_, err := NewRunner(graph.NewGraph(nil), Options{Trials: 1}).Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestReportString(t *testing.T) {
	report, err := NewRunner(ring(t), Options{Trials: 4, Limit: 10, Seed: 9}).Run(context.Background())
	require.NoError(t, err)
	s := report.String()
	assert.True(t, strings.Contains(s, "4/4 trials completed"))
	assert.Contains(t, s, "Average reached nodes: 2.0")
	assert.Contains(t, s, "[TIME-Total]")

	assert.Zero(t, Report{}.AverageTime())
}
