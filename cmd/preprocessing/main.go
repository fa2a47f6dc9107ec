package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/lintang-b-s/nogivan/pkg/osmparser"
	"github.com/lintang-b-s/nogivan/pkg/storage"
)

var (
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap file (.osm or .osm.pbf) for the road network graph")
	graphFile  = flag.String("graph", filepath.Join(storage.DB_DIR, storage.GRAPH_FILE_NAME), "output graph file")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		// ./bin/nogivan-preprocessing -cpuprofile=nogivancpu.prof -memprofile=nogivanmem.mprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Printf("reading osm file %s", *mapFile)
	osmParser := osmparser.NewOSMParser()
	g, err := osmParser.Parse(ctx, *mapFile)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "parsing_osm_data")

	log.Printf("saving graph to %s...", *graphFile)
	if err := storage.SaveGraph(*graphFile, g); err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "saving_graph")

	fmt.Printf("\n graph ready: %d nodes, %d edges\n", g.GetNumNodes(), g.GetNumEdges())
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

}
