package floodfill

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graphFmi = `10
26
# nodes
0 0 0
1 0 1
2 0 2
3 1 0
4 1 1
5 1 2
6 2 0
7 2 1
8 2 2
9 3 3
# edges
0 1 1
0 3 1
1 0 1
1 2 1
1 4 1
2 1 1
2 5 1
3 0 1
3 4 1
3 6 1
4 1 1
4 3 1
4 5 1
4 7 1
5 2 1
5 4 1
5 8 1
6 3 1
6 7 1
7 4 1
7 6 1
7 8 1
8 5 1
8 7 1
8 9 1
9 8 1`

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		edges [][]graph.Edge
		want  ResultMap
	}{
		{
			name:  "node without edges",
			edges: [][]graph.Edge{{}, {{To: 0, Cost: 1}}},
			want:  ResultMap{0: 0},
		},
		{
			name:  "chain",
			edges: [][]graph.Edge{{{To: 1, Cost: 100}}, {{To: 2, Cost: 50}}, {}},
			want:  ResultMap{0: 0, 1: 100, 2: 150},
		},
		{
			name:  "cycle",
			edges: [][]graph.Edge{{{To: 1, Cost: 100}}, {{To: 2, Cost: 50}}, {{To: 0, Cost: 10}}},
			want:  ResultMap{0: 0, 1: 100, 2: 150},
		},
		{
			name:  "ceiling exclusion",
			edges: [][]graph.Edge{{{To: 1, Cost: 100}}, {{To: 2, Cost: 4000}}, {}},
			want:  ResultMap{0: 0, 1: 100},
		},
		{
			name:  "exactly at the limit",
			edges: [][]graph.Edge{{{To: 1, Cost: 3600}}, {{To: 2, Cost: 1}}, {}},
			want:  ResultMap{0: 0, 1: 3600},
		},
		{
			name:  "cheaper detour wins",
			edges: [][]graph.Edge{{{To: 2, Cost: 500}, {To: 1, Cost: 10}}, {{To: 2, Cost: 10}}, {}},
			want:  ResultMap{0: 0, 1: 10, 2: 20},
		},
		{
			name:  "zero cost edges",
			edges: [][]graph.Edge{{{To: 1, Cost: 0}}, {{To: 2, Cost: 0}}, {{To: 0, Cost: 0}}},
			want:  ResultMap{0: 0, 1: 0, 2: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.NewGraph(tt.edges)
			assert.Equal(t, tt.want, FloodFill(g, 0, DefaultTimeLimit))
		})
	}
}

func TestGridGraph(t *testing.T) {
	g, err := graph.ParseFmi(graphFmi)
	require.NoError(t, err)

	result := FloodFill(g, 0, 5)
	assert.Len(t, result, 10)
	assert.Equal(t, graph.Cost(5), result[9])
	assert.Equal(t, graph.Cost(2), result[4])

	result = FloodFill(g, 0, 2)
	assert.Equal(t, []graph.NodeId{0, 1, 2, 3, 4, 6}, result.Nodes())
	assert.Equal(t, graph.Cost(2), result.MaxCost())
}

func TestZeroLimit(t *testing.T) {
	g := graph.NewGraph([][]graph.Edge{{{To: 1, Cost: 1}}, {}})
	assert.Equal(t, ResultMap{0: 0}, FloodFill(g, 0, 0))
}

func TestCostDoesNotWrap(t *testing.T) {
	g := graph.NewGraph([][]graph.Edge{
		{{To: 1, Cost: graph.MaxCost}},
		{{To: 2, Cost: graph.MaxCost}},
		{},
	})
	// with 16 bit arithmetic 65535 + 65535 would wrap to 65534 and node 2 would be reached
	assert.Equal(t, ResultMap{0: 0, 1: graph.MaxCost}, FloodFill(g, 0, graph.MaxCost))
}

func TestInvalidStart(t *testing.T) {
	g := graph.NewGraph([][]graph.Edge{{}})

	assert.Panics(t, func() { FloodFill(g, 1, DefaultTimeLimit) })

	_, err := NewFloodFiller(g).TryRun(1, DefaultTimeLimit)
	assert.ErrorIs(t, err, ErrInvalidStart)

	result, err := NewFloodFiller(g).TryRun(0, DefaultTimeLimit)
	require.NoError(t, err)
	assert.Equal(t, ResultMap{0: 0}, result)
}

func TestDanglingEdgePanics(t *testing.T) {
	g := graph.NewGraph([][]graph.Edge{{{To: 5, Cost: 1}}})
	assert.Panics(t, func() { FloodFill(g, 0, DefaultTimeLimit) })
}

func TestKPIs(t *testing.T) {
	g := graph.NewGraph([][]graph.Edge{{{To: 1, Cost: 100}}, {{To: 2, Cost: 50}}, {{To: 0, Cost: 10}}})
	f := NewFloodFiller(g)
	f.Run(0, DefaultTimeLimit)

	kpis := f.Stats()
	assert.Equal(t, 4, kpis.Pushes)
	assert.Equal(t, 4, kpis.Pops)
	assert.Equal(t, 1, kpis.StalePops)
	assert.Equal(t, 0, kpis.OverLimitPops)
	assert.Equal(t, 3, kpis.Settled)
	assert.Equal(t, 1, kpis.MaxFrontier)

	g = graph.NewGraph([][]graph.Edge{{{To: 1, Cost: 100}, {To: 2, Cost: 5000}, {To: 3, Cost: 6000}}, {}, {}, {}})
	f = NewFloodFiller(g)
	f.Run(0, DefaultTimeLimit)
	assert.Equal(t, 1, f.Stats().OverLimitPops, "search stops at the first entry above the limit")

	f = NewFloodFiller(g, WithoutEarlyExit())
	f.Run(0, DefaultTimeLimit)
	assert.Equal(t, 2, f.Stats().OverLimitPops)
}

func TestReuseFloodFiller(t *testing.T) {
	g := randomGraph(200, 4, 300, 3)
	f := NewFloodFiller(g)
	for start := graph.NodeId(0); start < 20; start++ {
		assert.Equal(t, FloodFill(g, start, 600), f.Run(start, 600))
	}
}

// randomGraph creates a graph where every node has up to degree outgoing edges
func randomGraph(n, degree, maxCost int, seed int64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	edges := make([][]graph.Edge, n)
	for i := range edges {
		for d := rng.Intn(degree + 1); d > 0; d-- {
			edges[i] = append(edges[i], graph.Edge{
				To:   graph.NodeId(rng.Intn(n)),
				Cost: graph.Cost(rng.Intn(maxCost + 1)),
			})
		}
	}
	return graph.NewGraph(edges)
}

// referenceCosts relaxes all edges until nothing changes (Bellman-Ford)
func referenceCosts(g *graph.Graph, start graph.NodeId) map[graph.NodeId]int {
	dist := map[graph.NodeId]int{start: 0}
	for changed := true; changed; {
		changed = false
		for from, d := range dist {
			for _, e := range g.Neighbors(from) {
				if old, ok := dist[e.To]; !ok || d+int(e.Cost) < old {
					dist[e.To] = d + int(e.Cost)
					changed = true
				}
			}
		}
	}
	return dist
}

func TestOptimality(t *testing.T) {
	limits := []graph.Cost{0, 50, 300, 1000, DefaultTimeLimit}
	for seed := int64(0); seed < 5; seed++ {
		g := randomGraph(150, 3, 400, seed)
		for start := graph.NodeId(0); start < 10; start++ {
			reference := referenceCosts(g, start)
			for _, limit := range limits {
				result := FloodFill(g, start, limit)

				expected := ResultMap{}
				for node, cost := range reference {
					if cost <= int(limit) {
						expected[node] = graph.Cost(cost)
					}
				}
				require.Equal(t, expected, result, "seed %d start %d limit %d", seed, start, limit)
			}
		}
	}
}

func TestProperties(t *testing.T) {
	g := randomGraph(500, 4, 600, 11)
	for start := graph.NodeId(0); start < 25; start++ {
		small := FloodFill(g, start, 900)
		large := FloodFill(g, start, 2700)

		// determinism
		assert.Equal(t, small, FloodFill(g, start, 900))
		// the origin is always reached at zero cost
		assert.Equal(t, graph.Cost(0), small[start])
		// nothing above the ceiling
		assert.LessOrEqual(t, small.MaxCost(), graph.Cost(900))
		// a larger limit only adds nodes
		for node, cost := range small {
			assert.Equal(t, cost, large[node])
		}
		for node, cost := range large {
			if cost <= 900 {
				assert.Contains(t, small, node)
			}
		}
	}
}

func TestFrontierBound(t *testing.T) {
	g := randomGraph(300, 5, 200, 5)
	f := NewFloodFiller(g)
	result := f.Run(0, DefaultTimeLimit)

	degrees := 1
	for node := range result {
		degrees += len(g.Neighbors(node))
	}
	assert.Equal(t, degrees, f.Stats().Pushes)
	assert.LessOrEqual(t, f.Stats().MaxFrontier, degrees)
}

func TestFrontierContainersAgree(t *testing.T) {
	g := randomGraph(400, 4, 500, 9)
	for _, name := range queue.Names() {
		factory, err := queue.Factory(name)
		require.NoError(t, err)
		f := NewFloodFiller(g, WithFrontier(factory))
		for start := graph.NodeId(0); start < 10; start++ {
			assert.Equal(t, FloodFill(g, start, 1200), f.Run(start, 1200), name)
		}
	}
}

func TestEarlyExitIsEquivalent(t *testing.T) {
	g := randomGraph(400, 4, 500, 13)
	exhaustive := NewFloodFiller(g, WithoutEarlyExit())
	for start := graph.NodeId(0); start < 10; start++ {
		assert.Equal(t, FloodFill(g, start, 800), exhaustive.Run(start, 800))
	}
}

func TestConcurrentSearches(t *testing.T) {
	g := randomGraph(1000, 4, 300, 21)
	expected := make([]ResultMap, 16)
	for i := range expected {
		expected[i] = FloodFill(g, graph.NodeId(i), 1500)
	}

	var wg sync.WaitGroup
	results := make([]ResultMap, len(expected))
	for i := range expected {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = NewFloodFiller(g).Run(graph.NodeId(i), 1500)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, expected, results)
}

func BenchmarkFloodFill(b *testing.B) {
	g := randomGraph(100000, 4, 120, 1)
	for _, name := range queue.Names() {
		factory, _ := queue.Factory(name)
		b.Run(name, func(b *testing.B) {
			f := NewFloodFiller(g, WithFrontier(factory))
			rng := rand.New(rand.NewSource(0))
			for i := 0; i < b.N; i++ {
				f.Run(graph.NodeId(rng.Intn(g.NodeCount())), DefaultTimeLimit)
			}
		})
	}
}
