// Package bench runs repeated flood fills from random origins and collects
// timing and search KPIs.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/natevvv/osm-floodfill/pkg/queue"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyGraph = errors.New("graph has no nodes")

type Options struct {
	Trials   int
	Limit    graph.Cost
	Workers  int
	Seed     int64                 // 0 picks a seed from the clock
	Frontier func() queue.Frontier // nil uses the default container
}

// Trial is the outcome of a single flood fill.
type Trial struct {
	Index   int
	Origin  graph.NodeId
	Reached int
	Elapsed time.Duration
	KPIs    floodfill.SearchKPIs
}

type Report struct {
	RunID     uuid.UUID
	Seed      int64
	Trials    int           // requested trials
	Completed int           // finished trials
	Search    time.Duration // summed search time of all completed trials
	Wall      time.Duration
	Reached   int
	KPIs      floodfill.SearchKPIs // summed, except MaxFrontier which is the maximum
}

func (r *Report) add(t Trial) {
	r.Completed++
	r.Search += t.Elapsed
	r.Reached += t.Reached
	r.KPIs.Pushes += t.KPIs.Pushes
	r.KPIs.Pops += t.KPIs.Pops
	r.KPIs.StalePops += t.KPIs.StalePops
	r.KPIs.OverLimitPops += t.KPIs.OverLimitPops
	r.KPIs.Settled += t.KPIs.Settled
	r.KPIs.MaxFrontier = max(r.KPIs.MaxFrontier, t.KPIs.MaxFrontier)
}

func (r Report) AverageTime() time.Duration {
	if r.Completed == 0 {
		return 0
	}
	return r.Search / time.Duration(r.Completed)
}

func (r Report) average(v int) float64 {
	if r.Completed == 0 {
		return 0
	}
	return float64(v) / float64(r.Completed)
}

func (r Report) AverageReached() float64 {
	return r.average(r.Reached)
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %v (seed %d): %v/%v trials completed\n", r.RunID, r.Seed, r.Completed, r.Trials)
	fmt.Fprintf(&sb, "[TIME-Total] = %s\n", r.Wall)
	fmt.Fprintf(&sb, "[TIME-Search] = %s\n", r.Search)
	fmt.Fprintf(&sb, "Average runtime: %.3fms\n", float64(r.AverageTime().Nanoseconds())/1e6)
	fmt.Fprintf(&sb, "Average reached nodes: %.1f\n", r.AverageReached())
	fmt.Fprintf(&sb, "Average pq pushes: %.1f\n", r.average(r.KPIs.Pushes))
	fmt.Fprintf(&sb, "Average pq pops: %.1f\n", r.average(r.KPIs.Pops))
	fmt.Fprintf(&sb, "Average stale pops: %.1f\n", r.average(r.KPIs.StalePops))
	fmt.Fprintf(&sb, "Average over limit pops: %.1f\n", r.average(r.KPIs.OverLimitPops))
	fmt.Fprintf(&sb, "Max frontier length: %d\n", r.KPIs.MaxFrontier)
	return sb.String()
}

// Origins draws n origins uniformly from [0, nodeCount).
func Origins(n, nodeCount int, seed int64) []graph.NodeId {
	rng := rand.New(rand.NewSource(seed))
	origins := make([]graph.NodeId, n)
	for i := range origins {
		origins[i] = graph.NodeId(rng.Intn(nodeCount))
	}
	return origins
}

type Runner struct {
	graph   *graph.Graph
	options Options

	// OnTrial is called after every completed trial. Calls are serialized.
	OnTrial func(Trial)
}

func NewRunner(g *graph.Graph, options Options) *Runner {
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.Seed == 0 {
		options.Seed = time.Now().UnixNano()
	}
	return &Runner{graph: g, options: options}
}

// Run executes all trials. When ctx is cancelled, the trials which already
// finished are reported together with the context error.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.New(), Seed: r.options.Seed, Trials: r.options.Trials}
	if r.graph.NodeCount() == 0 {
		return report, ErrEmptyGraph
	}
	origins := Origins(r.options.Trials, r.graph.NodeCount(), r.options.Seed)

	var opts []floodfill.Option
	if r.options.Frontier != nil {
		opts = append(opts, floodfill.WithFrontier(r.options.Frontier))
	}

	var mu sync.Mutex
	jobs := make(chan int)
	start := time.Now()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(jobs)
		for i := range origins {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < r.options.Workers; w++ {
		group.Go(func() error {
			// one FloodFiller per worker, the graph is shared
			f := floodfill.NewFloodFiller(r.graph, opts...)
			for i := range jobs {
				begin := time.Now()
				result := f.Run(origins[i], r.options.Limit)
				trial := Trial{
					Index:   i,
					Origin:  origins[i],
					Reached: len(result),
					Elapsed: time.Since(begin),
					KPIs:    f.Stats(),
				}

				mu.Lock()
				report.add(trial)
				if r.OnTrial != nil {
					r.OnTrial(trial)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err := group.Wait()
	report.Wall = time.Since(start)
	return report, err
}
