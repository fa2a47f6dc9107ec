package routingalgorithm

import (
	"cmp"
	"context"
	"fmt"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/util"
)

type queueItem struct {
	priority int64
	node     int64
}

// ties on priority go to the smaller node id so searches are deterministic.
func compareQueueItem(a, b queueItem) int {
	if a.priority != b.priority {
		return cmp.Compare(a.priority, b.priority)
	}
	return cmp.Compare(a.node, b.node)
}

/*
searchState. everything a single query mutates.

dist: best known distance from the source, absent means unknown.
prev: predecessor of a node on its best known path. survives restarts, path reconstruction walks it back from the target.
enqueued: queue handle of every node currently in the frontier.
distMax: length of the best path to the target found so far, only meaningful once bounded is set.
*/
type searchState struct {
	source     int64
	target     int64
	targetNode datastructure.Node

	dist     map[int64]int64
	prev     map[int64]int64
	enqueued map[int64]datastructure.Handle
	pq       *datastructure.BinomialHeap[queueItem]

	distMax int64
	bounded bool

	resets   int
	expanded int
}

func newSearchState(source int64, target datastructure.Node) *searchState {
	s := &searchState{
		source:     source,
		target:     target.ID,
		targetNode: target,
		dist:       make(map[int64]int64),
		prev:       make(map[int64]int64),
		enqueued:   make(map[int64]datastructure.Handle),
		pq:         datastructure.NewBinomialHeap(compareQueueItem),
	}
	s.seed()
	return s
}

func (s *searchState) seed() {
	s.dist[s.source] = 0
	s.enqueued[s.source] = s.pq.Insert(queueItem{priority: 0, node: s.source})
}

// restart clears the frontier and every distance except the one of the target, and seeds the source again.
// with bound set the following pass is a dijkstra pass pruned by the current target distance.
func (s *searchState) restart(bound bool) {
	best, ok := s.dist[s.target]
	util.AssertPanic(ok, "restart before node %d was reached", s.target)

	s.pq = datastructure.NewBinomialHeap(compareQueueItem)
	s.dist = make(map[int64]int64)
	s.enqueued = make(map[int64]datastructure.Handle)

	s.dist[s.target] = best
	s.seed()
	s.resets++

	if bound {
		s.bounded = true
		s.distMax = best
	}
}

func (rt *RouteAlgorithm) search(ctx context.Context, s *searchState) error {
	for !s.pq.IsEmpty() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		item, err := s.pq.ExtractMin()
		if err != nil {
			return fmt.Errorf("extract frontier: %w", err)
		}
		u := item.node
		delete(s.enqueued, u)
		s.expanded++

		if s.bounded && u == s.target {
			// bounded pass priorities are exact distances, nothing left in the queue can improve the target.
			return nil
		}

		improved, err := rt.relaxEdges(s, u)
		if err != nil {
			return err
		}
		if improved {
			s.restart(rt.strategy == StrategyTwoPhase)
		}
	}
	return nil
}

// relaxEdges relaxes every outgoing edge of u. returns true when the target improved and the search has to
// restart. the remaining edges of u are abandoned in that case, the next pass reaches them again.
func (rt *RouteAlgorithm) relaxEdges(s *searchState, u int64) (bool, error) {
	du := s.dist[u]

	for _, e := range rt.graph.GetOutEdges(u) {
		v := e.To
		candidate := du + e.Weight
		if curr, ok := s.dist[v]; ok && candidate >= curr {
			continue
		}

		handle, queued := s.enqueued[v]

		// h is truncated per query, weights per edge, so candidate+h may overshoot a path by up to 1 m per
		// remaining edge. the bounded pass prunes on candidate alone.
		switch {
		case s.bounded && candidate <= s.distMax && queued:
			if err := s.pq.DecreaseKey(handle, queueItem{priority: candidate, node: v}); err != nil {
				return false, fmt.Errorf("decrease key of node %d: %w", v, err)
			}
		case s.bounded && candidate <= s.distMax:
			s.enqueued[v] = s.pq.Insert(queueItem{priority: candidate, node: v})
		case !s.bounded && !queued:
			lowerBound := candidate + rt.heuristic(v, s.targetNode)
			s.enqueued[v] = s.pq.Insert(queueItem{priority: lowerBound, node: v})
		}

		s.dist[v] = candidate
		s.prev[v] = u

		if v == s.target {
			if !s.bounded {
				return true, nil
			}
			s.distMax = candidate
		}
	}
	return false, nil
}

// heuristic is the straight line distance from v to the target in meters.
func (rt *RouteAlgorithm) heuristic(v int64, target datastructure.Node) int64 {
	node, ok := rt.graph.GetNode(v)
	util.AssertPanic(ok, "edge to unknown node %d", v)
	return node.DistanceTo(target.Lat, target.Lon)
}

func (rt *RouteAlgorithm) reconstructPath(s *searchState) ([]datastructure.Node, error) {
	path := make([]datastructure.Node, 0)

	curr := s.target
	for {
		node, _ := rt.graph.GetNode(curr)
		path = append(path, node)
		if curr == s.source {
			break
		}

		// a chain longer than prev must contain a cycle
		if len(path) > len(s.prev)+1 {
			return nil, fmt.Errorf("predecessors of node %d loop without reaching node %d", s.target, s.source)
		}
		p, ok := s.prev[curr]
		if !ok {
			return nil, fmt.Errorf("node %d has no predecessor on the path to node %d", curr, s.target)
		}
		curr = p
	}

	return util.ReverseG(path), nil
}
