package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	_ "github.com/lintang-b-s/nogivan/docs"
	"github.com/lintang-b-s/nogivan/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nogivan/pkg/kv"
	"github.com/lintang-b-s/nogivan/pkg/server/rest"
	"github.com/lintang-b-s/nogivan/pkg/server/rest/service"
	"github.com/lintang-b-s/nogivan/pkg/snap"
	"github.com/lintang-b-s/nogivan/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	graphFile  = flag.String("graph", filepath.Join(storage.DB_DIR, storage.GRAPH_FILE_NAME), "graph file written by nogivan-preprocessing")
	cacheDir   = flag.String("cache", filepath.Join(storage.DB_DIR, storage.ROUTE_CACHE_DIR), "route cache directory, empty keeps the cache in memory")
	noCache    = flag.Bool("nocache", false, "disable the route cache")
	strategy   = flag.String("strategy", "twophase", "search strategy: twophase or restart")
	useRtree   = flag.Bool("rtree", true, "snap with an r-tree index instead of a linear scan")
	numWorkers = flag.Int("workers", runtime.NumCPU(), "distance matrix workers")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

//	@title			nogivan API
//	@version		1.0
//	@description	simple openstreetmap shortest path engine in go. binomial heap search with a straight line heuristic.

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	g, err := storage.LoadGraph(*graphFile)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "load_graph")

	searchStrategy, err := routingalgorithm.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal(err)
	}
	opts := []routingalgorithm.Option{routingalgorithm.WithStrategy(searchStrategy)}
	if *useRtree {
		log.Printf("building r-tree snapping index...")
		opts = append(opts, routingalgorithm.WithSnapper(snap.NewRtreeSnapper(g)))
	}
	routingAlgorithm := routingalgorithm.NewRouteAlgorithm(g, opts...)

	var routeCache service.KVDB
	if !*noCache {
		db, err := kv.OpenBadger(*cacheDir)
		if err != nil {
			log.Fatal(err)
		}
		kvDB := kv.NewKVDB(db)
		defer kvDB.Close()
		routeCache = kvDB
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"), //The url pointing to API definition
	))

	navigatorSvc := service.NewNavigationService(g, routeCache, routingAlgorithm, *numWorkers)
	recordMemProfile(memprofile, "service_init")

	rest.NavigatorRouter(r, navigatorSvc, m)

	fmt.Printf("\n binomial heap %s search ready!!", searchStrategy)
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
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
