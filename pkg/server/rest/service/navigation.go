package service

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/nogivan/pkg/concurrent"
	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nogivan/pkg/geo"
	"github.com/lintang-b-s/nogivan/pkg/gpx"
	"github.com/lintang-b-s/nogivan/pkg/kv"
	"github.com/lintang-b-s/nogivan/pkg/server"
)

var (
	ErrNotCovered = errors.New("location outside of the map")
)

const (
	// query points further than this from the map bounding box are rejected before snapping
	coverageMarginMeters = 5000
	maxMatrixCells       = 2500

	notCoveredMsg = "sorry!! the location you entered is not covered on my map :(, please use diferrent opensteetmap file"
)

type Graph interface {
	Bounds() s2.Rect
}

type RoutingAlgorithm interface {
	Snap(lat, lon float64) (datastructure.Node, error)
	ShortestPath(ctx context.Context, from, to int64) (routingalgorithm.RoutingResult, error)
	Strategy() routingalgorithm.Strategy
}

type KVDB interface {
	GetRoute(ctx context.Context, strategy string, from, to int64) (kv.CachedRoute, error)
	SaveRoute(ctx context.Context, strategy string, from, to int64, route kv.CachedRoute) error
	SaveRoutes(ctx context.Context, strategy string, entries []kv.RouteEntry) error
}

type NavigationService struct {
	bounds     s2.Rect
	kv         KVDB
	routing    RoutingAlgorithm
	numWorkers int
}

// NewNavigationService. kv may be nil to run without a route cache.
func NewNavigationService(graph Graph, kv KVDB, routing RoutingAlgorithm, numWorkers int) *NavigationService {
	return &NavigationService{
		bounds:     graph.Bounds(),
		kv:         kv,
		routing:    routing,
		numWorkers: numWorkers,
	}
}

type ShortestPathResult struct {
	Path     []datastructure.Coordinate
	NodeIDs  []int64
	Polyline string
	Dist     int64 // meters
	Resets   int
	Expanded int
	Cached   bool
}

func (uc *NavigationService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (ShortestPathResult, error) {
	from, err := uc.SnapLocToStreetNode(srcLat, srcLon)
	if err != nil {
		return ShortestPathResult{}, err
	}
	to, err := uc.SnapLocToStreetNode(dstLat, dstLon)
	if err != nil {
		return ShortestPathResult{}, err
	}

	return uc.shortestPathNodes(ctx, from.ID, to.ID)
}

func (uc *NavigationService) shortestPathNodes(ctx context.Context, from, to int64) (ShortestPathResult, error) {
	strategy := uc.routing.Strategy().String()

	if uc.kv != nil {
		cached, err := uc.kv.GetRoute(ctx, strategy, from, to)
		if err == nil {
			return resultFromCache(cached), nil
		}
		if !errors.Is(err, kv.ErrRouteNotCached) {
			log.Printf("route cache lookup %d -> %d: %v", from, to, err)
		}
	}

	res, err := uc.routing.ShortestPath(ctx, from, to)
	if errors.Is(err, routingalgorithm.ErrNotFound) {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrNotFound, "no route found between the two locations")
	}
	if err != nil {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	result := resultFromRouting(res)
	if uc.kv != nil {
		if err := uc.kv.SaveRoute(ctx, strategy, from, to, toCachedRoute(result)); err != nil {
			log.Printf("route cache save %d -> %d: %v", from, to, err)
		}
	}
	return result, nil
}

// ShortestPathGPX returns the shortest path as a gpx document.
func (uc *NavigationService) ShortestPathGPX(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) ([]byte, error) {
	res, err := uc.ShortestPath(ctx, srcLat, srcLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gpx.Write(&buf, res.Path); err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return buf.Bytes(), nil
}

// SnapLocToStreetNode returns the graph node closest to lat,lon, or an ErrNotFound coded error when the point is
// not covered by the map.
func (uc *NavigationService) SnapLocToStreetNode(lat, lon float64) (datastructure.Node, error) {
	if !geo.IsCovered(uc.bounds, lat, lon, coverageMarginMeters) {
		return datastructure.Node{}, server.WrapErrorf(ErrNotCovered, server.ErrNotFound, notCoveredMsg)
	}

	node, err := uc.routing.Snap(lat, lon)
	if err != nil {
		return datastructure.Node{}, server.WrapErrorf(err, server.ErrNotFound, notCoveredMsg)
	}
	return node, nil
}

type distanceCell struct {
	row, col int
	result   routingalgorithm.RoutingResult
	err      error
}

/*
DistanceMatrix. shortest path length in meters from every source to every target, -1 when a target can not be
reached. every cell is an independent query, the queries run on a worker pool over the shared graph.
*/
func (uc *NavigationService) DistanceMatrix(ctx context.Context, sources, targets []datastructure.Coordinate) ([][]int64, error) {
	if len(sources)*len(targets) > maxMatrixCells {
		return nil, server.NewErrorf(server.ErrBadParamInput, "distance matrix is limited to %d cells", maxMatrixCells)
	}

	sourceNodes, err := uc.snapAll(sources)
	if err != nil {
		return nil, err
	}
	targetNodes, err := uc.snapAll(targets)
	if err != nil {
		return nil, err
	}

	workers := concurrent.NewWorkerPool[concurrent.DistanceQueryParam, distanceCell](uc.numWorkers,
		len(sourceNodes)*len(targetNodes))

	for i, src := range sourceNodes {
		for j, dst := range targetNodes {
			workers.AddJob(concurrent.NewDistanceQueryParam(i, j, src, dst))
		}
	}

	workers.Close()
	workers.Start(func(job concurrent.DistanceQueryParam) distanceCell {
		res, err := uc.routing.ShortestPath(ctx, job.From, job.To)
		return distanceCell{row: job.Row, col: job.Col, result: res, err: err}
	})
	workers.Wait()

	matrix := make([][]int64, len(sourceNodes))
	for i := range matrix {
		matrix[i] = make([]int64, len(targetNodes))
	}

	entries := make([]kv.RouteEntry, 0, len(sourceNodes)*len(targetNodes))
	var firstErr error
	for cell := range workers.CollectResults() {
		switch {
		case cell.err == nil:
			matrix[cell.row][cell.col] = cell.result.Length
			entries = append(entries, kv.RouteEntry{
				From:  sourceNodes[cell.row],
				To:    targetNodes[cell.col],
				Route: toCachedRoute(resultFromRouting(cell.result)),
			})
		case errors.Is(cell.err, routingalgorithm.ErrNotFound):
			matrix[cell.row][cell.col] = -1
		case firstErr == nil:
			firstErr = cell.err
		}
	}
	if firstErr != nil {
		return nil, server.WrapErrorf(firstErr, server.ErrInternalServerError, "internal server error")
	}

	if uc.kv != nil && len(entries) > 0 {
		if err := uc.kv.SaveRoutes(ctx, uc.routing.Strategy().String(), entries); err != nil {
			log.Printf("route cache save distance matrix: %v", err)
		}
	}
	return matrix, nil
}

func (uc *NavigationService) snapAll(coords []datastructure.Coordinate) ([]int64, error) {
	ids := make([]int64, 0, len(coords))
	for _, c := range coords {
		node, err := uc.SnapLocToStreetNode(c.Lat, c.Lon)
		if err != nil {
			return nil, err
		}
		ids = append(ids, node.ID)
	}
	return ids, nil
}

func resultFromRouting(res routingalgorithm.RoutingResult) ShortestPathResult {
	path := res.Coordinates()
	ids := make([]int64, 0, len(res.Path))
	for _, n := range res.Path {
		ids = append(ids, n.ID)
	}
	return ShortestPathResult{
		Path:     path,
		NodeIDs:  ids,
		Polyline: datastructure.CreatePolyline(path),
		Dist:     res.Length,
		Resets:   res.Resets,
		Expanded: res.Expanded,
	}
}

func toCachedRoute(res ShortestPathResult) kv.CachedRoute {
	lats := make([]float64, 0, len(res.Path))
	lons := make([]float64, 0, len(res.Path))
	for _, c := range res.Path {
		lats = append(lats, c.Lat)
		lons = append(lons, c.Lon)
	}
	return kv.CachedRoute{
		NodeIDs: res.NodeIDs,
		Lats:    lats,
		Lons:    lons,
		Length:  res.Dist,
	}
}

func resultFromCache(cached kv.CachedRoute) ShortestPathResult {
	path := datastructure.NewCoordinates(cached.Lats, cached.Lons)
	return ShortestPathResult{
		Path:     path,
		NodeIDs:  cached.NodeIDs,
		Polyline: datastructure.CreatePolyline(path),
		Dist:     cached.Length,
		Cached:   true,
	}
}
