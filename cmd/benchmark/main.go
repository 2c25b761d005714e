package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/natevvv/osm-floodfill/internal/bench"
	"github.com/natevvv/osm-floodfill/internal/config"
	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/queue"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	verbose := fs.Bool("v", false, "print every trial")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	frontier, err := queue.Factory(cfg.Frontier)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Using graph: %v\n", cfg.Graph)
	start := time.Now()
	g, err := graph.Load(cfg.Graph)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))
	fmt.Println(graph.Summary(g))

	if cfg.CpuProfile != "" {
		f, err := os.Create(cfg.CpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	// interrupt stops the run, the finished trials are still reported
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := bench.NewRunner(g, bench.Options{
		Trials:   cfg.Trials,
		Limit:    cfg.Limit(),
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		Frontier: frontier,
	})
	if *verbose {
		runner.OnTrial = func(t bench.Trial) {
			fmt.Printf("[%4v TIME-FloodFill, Origin, Reached, PQ Pops, PQ Pushes] = %12s, %9d, %8d, %8d, %8d\n",
				t.Index, t.Elapsed, t.Origin, t.Reached, t.KPIs.Pops, t.KPIs.Pushes)
		}
	}

	report, err := runner.Run(ctx)
	fmt.Print(report)
	if err != nil {
		log.Printf("benchmark stopped early: %v", err)
	}
}
