package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nogivan/pkg/gpx"
	"github.com/lintang-b-s/nogivan/pkg/osmparser"
	"github.com/lintang-b-s/nogivan/pkg/snap"
	"github.com/lintang-b-s/nogivan/pkg/storage"
)

var (
	mapFile   = flag.String("f", "", "openstreetmap file (.osm or .osm.pbf), parsed on every run")
	graphFile = flag.String("graph", "", "graph file written by nogivan-preprocessing, used when -f is empty")
	from      = flag.String("from", "", "source coordinate as lat,lon")
	to        = flag.String("to", "", "destination coordinate as lat,lon")
	strategy  = flag.String("strategy", "twophase", "search strategy: twophase or restart")
	useRtree  = flag.Bool("rtree", false, "snap with an r-tree index instead of a linear scan")
	gpxFile   = flag.String("gpx", "", "write the route to this gpx file")
)

func main() {
	flag.Parse()

	fromLat, fromLon, err := parseLatLon(*from)
	if err != nil {
		log.Fatalf("-from: %v", err)
	}
	toLat, toLon, err := parseLatLon(*to)
	if err != nil {
		log.Fatalf("-to: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, err := loadGraph(ctx)
	if err != nil {
		log.Fatal(err)
	}

	searchStrategy, err := routingalgorithm.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal(err)
	}
	opts := []routingalgorithm.Option{routingalgorithm.WithStrategy(searchStrategy)}
	if *useRtree {
		opts = append(opts, routingalgorithm.WithSnapper(snap.NewRtreeSnapper(g)))
	}
	rt := routingalgorithm.NewRouteAlgorithm(g, opts...)

	start := time.Now()
	res, err := rt.Route(ctx, fromLat, fromLon, toLat, toLon)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("length: %d m\n", res.Length)
	fmt.Printf("nodes: %d, expanded: %d, resets: %d, took %s\n", len(res.Path), res.Expanded, res.Resets, time.Since(start))
	fmt.Printf("polyline: %s\n", datastructure.CreatePolyline(res.Coordinates()))

	if *gpxFile != "" {
		if err := gpx.WriteFile(*gpxFile, res.Coordinates()); err != nil {
			log.Fatal(err)
		}
		log.Printf("route written to %s", *gpxFile)
	}
}

func loadGraph(ctx context.Context) (*datastructure.Graph, error) {
	switch {
	case *mapFile != "":
		return osmparser.NewOSMParser().Parse(ctx, *mapFile)
	case *graphFile != "":
		return storage.LoadGraph(*graphFile)
	default:
		return nil, fmt.Errorf("either -f or -graph is required")
	}
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
