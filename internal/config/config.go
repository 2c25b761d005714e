// Package config holds the settings shared by the commands. Settings come
// from flags and, optionally, from an HCL file given with -config (.hcl or
// .json). Flags given on the command line override the file.
//
//	graph      = "graphs/walk/graph.bin"
//	trials     = 1000
//	time_limit = 3600
//	workers    = 4
//	frontier   = "maxheap"
package config

import (
	"errors"
	"flag"
	"fmt"
	"runtime"
	"slices"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/natevvv/osm-floodfill/pkg/queue"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Graph      string // graph file, .fmi or blob
	Trials     int    // number of benchmark trials
	TimeLimit  int    // seconds
	Workers    int    // concurrent benchmark workers
	Seed       int64  // random seed for origins, 0 picks one from the clock
	Frontier   string // frontier container
	Addr       string // listen address of the server
	CpuProfile string // write a cpu profile to this file
}

// file mirrors Config for decoding. Pointers tell absent attributes apart from zero values.
type file struct {
	Graph      *string `hcl:"graph,optional"`
	Trials     *int    `hcl:"trials,optional"`
	TimeLimit  *int    `hcl:"time_limit,optional"`
	Workers    *int    `hcl:"workers,optional"`
	Seed       *int64  `hcl:"seed,optional"`
	Frontier   *string `hcl:"frontier,optional"`
	Addr       *string `hcl:"addr,optional"`
	CpuProfile *string `hcl:"cpu_profile,optional"`
}

func Default() Config {
	return Config{
		Graph:     "graph.bin",
		Trials:    1000,
		TimeLimit: int(floodfill.DefaultTimeLimit),
		Workers:   1,
		Frontier:  queue.MaxHeap,
		Addr:      ":8081",
	}
}

// Bind registers a flag for every setting on fs, writing into c.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Graph, "graph", c.Graph, "graph file (.fmi or binary blob)")
	fs.IntVar(&c.Trials, "n", c.Trials, "number of flood fills to run")
	fs.IntVar(&c.TimeLimit, "limit", c.TimeLimit, "time limit in seconds")
	fs.IntVar(&c.Workers, "workers", c.Workers, fmt.Sprintf("concurrent workers (this machine has %d cpus)", runtime.NumCPU()))
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 uses the current time")
	fs.StringVar(&c.Frontier, "frontier", c.Frontier, fmt.Sprintf("frontier container, one of %v", queue.Names()))
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.StringVar(&c.CpuProfile, "cpu", c.CpuProfile, "write cpu profile to file")
}

// ApplyFile overwrites the settings which are present in the HCL file.
func (c *Config) ApplyFile(filename string) error {
	var f file
	if err := hclsimple.DecodeFile(filename, nil, &f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	set(&c.Graph, f.Graph)
	set(&c.Trials, f.Trials)
	set(&c.TimeLimit, f.TimeLimit)
	set(&c.Workers, f.Workers)
	set(&c.Seed, f.Seed)
	set(&c.Frontier, f.Frontier)
	set(&c.Addr, f.Addr)
	set(&c.CpuProfile, f.CpuProfile)
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (c Config) Validate() error {
	if c.Graph == "" {
		return fmt.Errorf("%w: no graph file", ErrInvalidConfig)
	}
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.TimeLimit < 0 || c.TimeLimit > int(graph.MaxCost) {
		return fmt.Errorf("%w: time limit must be within [0, %d], got %d", ErrInvalidConfig, graph.MaxCost, c.TimeLimit)
	}
	if !slices.Contains(queue.Names(), c.Frontier) {
		return fmt.Errorf("%w: unknown frontier %q", ErrInvalidConfig, c.Frontier)
	}
	return nil
}

func (c Config) Limit() graph.Cost {
	return graph.Cost(c.TimeLimit)
}

// Parse binds the settings to fs and parses args. If -config names a file,
// the file is applied and args are parsed again, so explicit flags win.
// Commands register their own flags on fs before calling Parse.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	c := Default()
	c.Bind(fs)
	configFile := fs.String("config", "", "HCL configuration file")

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if *configFile != "" {
		if err := c.ApplyFile(*configFile); err != nil {
			return c, err
		}
		if err := fs.Parse(args); err != nil {
			return c, err
		}
	}
	return c, c.Validate()
}
