package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/natevvv/osm-floodfill/internal/pbf"
	"github.com/natevvv/osm-floodfill/pkg/graph"
)

func main() {
	edgeList := flag.String("edgelist", "", "convert a JSON edge list")
	nodeCount := flag.Int("nodes", 0, "node count of the edge list, 0 derives it from the largest id")
	pbfFile := flag.String("pbf", "", "build a walking graph from an OSM PBF extract")
	roadsFile := flag.String("roads", "", "also export the imported roads as GeoJSON (with -pbf)")
	convert := flag.String("convert", "", "convert a graph between fmi and blob")
	output := flag.String("o", "graph.bin", "output file, .fmi is written as text, everything else as blob")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var g *graph.Graph
	var err error
	start := time.Now()

	switch {
	case *edgeList != "":
		g, err = convertEdgeList(*edgeList, *nodeCount)
	case *pbfFile != "":
		g, err = importPbf(ctx, *pbfFile, *roadsFile)
	case *convert != "":
		g, err = graph.Load(*convert)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Build] = %s\n", time.Since(start))
	fmt.Println(graph.Summary(g))

	start = time.Now()
	if err := graph.Save(g, *output); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Export] = %s\n", time.Since(start))
	fmt.Printf("Graph written to %s\n", *output)
}

func convertEdgeList(filename string, nodeCount int) (*graph.Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return graph.ConvertEdgeList(file, nodeCount)
}

func importPbf(ctx context.Context, filename, roadsFile string) (*graph.Graph, error) {
	importer := pbf.NewRoadImporter(filename)
	if err := importer.Import(ctx); err != nil {
		return nil, err
	}
	log.Printf("Imported %d walkable ways with %d nodes", len(importer.Roads()), len(importer.Nodes()))

	if roadsFile != "" {
		if err := pbf.ExportRoadGeoJson(importer.Roads(), importer, roadsFile); err != nil {
			return nil, err
		}
		log.Printf("Roads written to %s", roadsFile)
	}
	return importer.Graph()
}
