package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/natevvv/osm-floodfill/internal/config"
	"github.com/natevvv/osm-floodfill/pkg/graph"
	"github.com/natevvv/osm-floodfill/pkg/graph/floodfill"
	"github.com/natevvv/osm-floodfill/pkg/queue"
)

var suggestions = []prompt.Suggest{
	{Text: "fill", Description: "fill node [limit] - Flood fill from node within limit seconds"},
	{Text: "frontier", Description: "frontier name - Switch the frontier container"},
	{Text: "node", Description: "node id - Show the edges and coordinate of a node"},
	{Text: "stats", Description: "stats - Show node and edge counts"},
	{Text: "exit", Description: "exit - Leave the shell"},
}

func completer(d prompt.Document) []prompt.Suggest {
	input := d.TextBeforeCursor()
	words := strings.Split(input, " ")
	if words[0] == "" {
		return []prompt.Suggest{}
	}
	if len(words) == 2 && words[0] == "frontier" {
		s := make([]prompt.Suggest, 0)
		for _, name := range queue.Names() {
			s = append(s, prompt.Suggest{Text: name})
		}
		return prompt.FilterHasPrefix(s, words[1], true)
	}
	return prompt.FilterHasPrefix(suggestions, words[0], true)
}

type shell struct {
	out         io.Writer
	floodFiller *floodfill.FloodFiller
	limit       graph.Cost
}

func newShell(g *graph.Graph, limit graph.Cost, out io.Writer) *shell {
	return &shell{out: out, floodFiller: floodfill.NewFloodFiller(g), limit: limit}
}

// execute runs one command line. It returns false if the shell should exit.
func (s *shell) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	g := s.floodFiller.Graph()

	switch fields[0] {
	case "exit", "quit":
		return false
	case "stats":
		fmt.Fprintln(s.out, graph.Summary(g))
	case "node":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: node id")
			return true
		}
		id, err := s.parseNode(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return true
		}
		if p, ok := g.Coordinate(id); ok {
			fmt.Fprintf(s.out, "node %d at lat %v lon %v\n", id, p.Lat(), p.Lon())
		}
		for _, e := range g.Neighbors(id) {
			fmt.Fprintf(s.out, "  -> %d (%ds)\n", e.To, e.Cost)
		}
	case "frontier":
		if len(fields) != 2 {
			fmt.Fprintf(s.out, "usage: frontier %v\n", queue.Names())
			return true
		}
		factory, err := queue.Factory(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return true
		}
		s.floodFiller = floodfill.NewFloodFiller(g, floodfill.WithFrontier(factory))
		fmt.Fprintf(s.out, "using frontier %s\n", fields[1])
	case "fill":
		if len(fields) < 2 || len(fields) > 3 {
			fmt.Fprintln(s.out, "usage: fill node [limit]")
			return true
		}
		id, err := s.parseNode(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return true
		}
		limit := s.limit
		if len(fields) == 3 {
			l, err := strconv.ParseUint(fields[2], 10, 16)
			if err != nil {
				fmt.Fprintf(s.out, "invalid limit %q, expected 0..%d\n", fields[2], graph.MaxCost)
				return true
			}
			limit = graph.Cost(l)
		}
		s.fill(id, limit)
	default:
		fmt.Fprintf(s.out, "unknown command %q\n", fields[0])
	}
	return true
}

func (s *shell) parseNode(field string) (graph.NodeId, error) {
	id, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid node %q", field)
	}
	if n := s.floodFiller.Graph().NodeCount(); int(id) >= n {
		return 0, fmt.Errorf("%w: %d (node count %d)", floodfill.ErrInvalidStart, id, n)
	}
	return graph.NodeId(id), nil
}

func (s *shell) fill(start graph.NodeId, limit graph.Cost) {
	begin := time.Now()
	result := s.floodFiller.Run(start, limit)
	elapsed := time.Since(begin)
	kpis := s.floodFiller.Stats()

	fmt.Fprintf(s.out, "reached %d nodes within %ds, farthest at %ds\n", len(result), limit, result.MaxCost())
	fmt.Fprintf(s.out, "[TIME-FloodFill, PQ Pops, PQ Pushes] = %s, %d, %d\n", elapsed, kpis.Pops, kpis.Pushes)

	// print small results completely
	if len(result) <= 20 {
		nodes := result.Nodes()
		sort.SliceStable(nodes, func(i, j int) bool { return result[nodes[i]] < result[nodes[j]] })
		for _, n := range nodes {
			fmt.Fprintf(s.out, "  %d: %ds\n", n, result[n])
		}
	}
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	g, err := graph.Load(cfg.Graph)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))
	fmt.Println(graph.Summary(g))
	fmt.Println("Please use `exit` or `Ctrl-D` to exit this program.")
	defer fmt.Println("Bye!")

	s := newShell(g, cfg.Limit(), os.Stdout)
	p := prompt.New(
		func(cmd string) {
			if !s.execute(cmd) {
				fmt.Println("Bye!")
				os.Exit(0)
			}
		},
		completer,
		prompt.OptionPrefix("floodfill> "),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionSuggestionTextColor(prompt.Yellow),
		prompt.OptionSuggestionBGColor(prompt.Black),
	)
	p.Run()
}
