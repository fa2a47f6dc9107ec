package routingalgorithm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/snap"
)

var (
	ErrNotFound = errors.New("no path between the snapped nodes")
)

// Strategy selects how the search refines the first path it finds to the target.
type Strategy int

const (
	// StrategyTwoPhase runs a heuristic ordered search until the target is first reached, then a single
	// dijkstra pass that skips every node farther than that first path length.
	StrategyTwoPhase Strategy = iota
	// StrategyRestart discards the frontier every time the target improves and searches again from the
	// source, until a pass finishes without improving the target.
	StrategyRestart
)

func (s Strategy) String() string {
	switch s {
	case StrategyTwoPhase:
		return "twophase"
	case StrategyRestart:
		return "restart"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "twophase", "two-phase", "":
		return StrategyTwoPhase, nil
	case "restart":
		return StrategyRestart, nil
	default:
		return 0, fmt.Errorf("unknown search strategy %q", name)
	}
}

type RouteAlgorithm struct {
	graph    Graph
	snapper  Snapper
	strategy Strategy
}

type Option func(*RouteAlgorithm)

func WithStrategy(strategy Strategy) Option {
	return func(rt *RouteAlgorithm) {
		rt.strategy = strategy
	}
}

// WithSnapper replaces the default linear scan snapper, e.g. with snap.RtreeSnapper.
func WithSnapper(snapper Snapper) Option {
	return func(rt *RouteAlgorithm) {
		rt.snapper = snapper
	}
}

// NewRouteAlgorithm. g must not be modified while queries run. queries share nothing but g, so a single
// RouteAlgorithm can serve concurrent callers.
func NewRouteAlgorithm(g Graph, opts ...Option) *RouteAlgorithm {
	rt := &RouteAlgorithm{
		graph:    g,
		strategy: StrategyTwoPhase,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.snapper == nil {
		rt.snapper = snap.NewLinearSnapper(g)
	}
	return rt
}

func (rt *RouteAlgorithm) Strategy() Strategy {
	return rt.strategy
}

type RoutingResult struct {
	Path     []datastructure.Node
	Length   int64 // meters
	Resets   int
	Expanded int
}

func (r RoutingResult) Coordinates() []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0, len(r.Path))
	for _, n := range r.Path {
		coords = append(coords, n.Coordinate())
	}
	return coords
}

// Snap returns the graph node closest to lat,lon.
func (rt *RouteAlgorithm) Snap(lat, lon float64) (datastructure.Node, error) {
	node, err := rt.snapper.SnapToNode(lat, lon)
	if err != nil {
		return datastructure.Node{}, fmt.Errorf("snap (%f,%f): %w: %w", lat, lon, ErrNotFound, err)
	}
	return node, nil
}

// Route snaps both coordinates to their closest graph nodes and returns the shortest path between them.
func (rt *RouteAlgorithm) Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (RoutingResult, error) {
	from, err := rt.Snap(fromLat, fromLon)
	if err != nil {
		return RoutingResult{}, err
	}
	to, err := rt.Snap(toLat, toLon)
	if err != nil {
		return RoutingResult{}, err
	}
	return rt.ShortestPath(ctx, from.ID, to.ID)
}

// ShortestPath returns the shortest path from node from to node to. errors wrap ErrNotFound when to can not be
// reached, ctx.Err() when ctx is done before the search finishes.
func (rt *RouteAlgorithm) ShortestPath(ctx context.Context, from, to int64) (RoutingResult, error) {
	source, ok := rt.graph.GetNode(from)
	if !ok {
		return RoutingResult{}, fmt.Errorf("source node %d: %w", from, ErrNotFound)
	}
	target, ok := rt.graph.GetNode(to)
	if !ok {
		return RoutingResult{}, fmt.Errorf("target node %d: %w", to, ErrNotFound)
	}

	if from == to {
		return RoutingResult{Path: []datastructure.Node{source}}, nil
	}

	s := newSearchState(source.ID, target)
	if err := rt.search(ctx, s); err != nil {
		return RoutingResult{}, err
	}

	length, ok := s.dist[to]
	if !ok {
		return RoutingResult{}, fmt.Errorf("route %d -> %d: %w", from, to, ErrNotFound)
	}

	path, err := rt.reconstructPath(s)
	if err != nil {
		return RoutingResult{}, err
	}

	return RoutingResult{
		Path:     path,
		Length:   length,
		Resets:   s.resets,
		Expanded: s.expanded,
	}, nil
}
