package datastructure

import (
	"log"
	"sort"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/nogivan/pkg/geo"
	"github.com/lintang-b-s/nogivan/pkg/util"
)

type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

func NewNode(id int64, lat, lon float64) Node {
	return Node{ID: id, Lat: lat, Lon: lon}
}

func (n Node) Coordinate() Coordinate {
	return NewCoordinate(n.Lat, n.Lon)
}

// DistanceTo returns the great-circle distance in meters from n to lat,lon.
func (n Node) DistanceTo(lat, lon float64) int64 {
	return geo.CalculateGreatCircleDistance(n.Lat, n.Lon, lat, lon)
}

// Edge is a directed edge to node To. Weight is the great-circle distance between both endpoints in meters.
type Edge struct {
	To     int64
	Weight int64
	WayID  int64
}

// FlatEdge is an Edge together with its source node, used to serialize the graph.
type FlatEdge struct {
	From   int64
	To     int64
	Weight int64
	WayID  int64
}

type Way struct {
	ID     int64
	Name   string
	OneWay bool
}

/*
Graph. street/pathway network.

construction order: every AddWay first, then every AddNode, then Finalize. a node is only kept when some way
already references it. Finalize computes edge weights (node coordinates are unknown while ways are added),
drops edges to nodes that never arrived and sorts every adjacency list by target id.
after Finalize the graph is read only and can be shared by concurrent queries.
*/
type Graph struct {
	nodes     map[int64]Node
	adjacency map[int64][]Edge
	ways      map[int64]Way
	nodeIDs   []int64
	numEdges  int
	finalized bool
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[int64]Node),
		adjacency: make(map[int64][]Edge),
		ways:      make(map[int64]Way),
	}
}

// AddWay inserts directed edges between consecutive nodes of the way, in both directions unless oneWay.
// parallel edges between the same pair of nodes are kept.
func (g *Graph) AddWay(id int64, nodeIDs []int64, oneWay bool, name string) {
	util.AssertPanic(!g.finalized, "add way %d to a finalized graph", id)
	if len(nodeIDs) < 2 {
		return
	}

	g.ways[id] = Way{ID: id, Name: name, OneWay: oneWay}

	for i := 0; i < len(nodeIDs)-1; i++ {
		g.addEdge(nodeIDs[i], nodeIDs[i+1], id)
		if !oneWay {
			g.addEdge(nodeIDs[i+1], nodeIDs[i], id)
		}
	}
}

func (g *Graph) addEdge(from, to int64, wayID int64) {
	if _, ok := g.adjacency[to]; !ok {
		// target must be known as an edge endpoint so AddNode keeps it
		g.adjacency[to] = make([]Edge, 0)
	}
	g.adjacency[from] = append(g.adjacency[from], Edge{To: to, WayID: wayID})
}

// AddNode keeps the node only if an edge already references it. returns whether the node was kept.
func (g *Graph) AddNode(id int64, lat, lon float64) bool {
	util.AssertPanic(!g.finalized, "add node %d to a finalized graph", id)
	if _, ok := g.adjacency[id]; !ok {
		return false
	}
	g.nodes[id] = NewNode(id, lat, lon)
	return true
}

// Finalize freezes the graph. returns the number of dropped edges (edges with an endpoint that has no node).
func (g *Graph) Finalize() int {
	if g.finalized {
		return 0
	}

	dropped := 0
	incident := make(map[int64]struct{}, len(g.nodes))
	for from, edges := range g.adjacency {
		fromNode, ok := g.nodes[from]
		if !ok {
			dropped += len(edges)
			delete(g.adjacency, from)
			continue
		}

		kept := edges[:0]
		for _, e := range edges {
			toNode, ok := g.nodes[e.To]
			if !ok {
				dropped++
				continue
			}
			e.Weight = geo.CalculateGreatCircleDistance(fromNode.Lat, fromNode.Lon, toNode.Lat, toNode.Lon)
			kept = append(kept, e)
			incident[from] = struct{}{}
			incident[e.To] = struct{}{}
		}

		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].To < kept[j].To
		})
		g.adjacency[from] = kept
		g.numEdges += len(kept)
	}

	for id := range g.nodes {
		if _, ok := incident[id]; !ok {
			delete(g.nodes, id)
			delete(g.adjacency, id)
		}
	}

	g.buildNodeIndex()

	if dropped > 0 {
		log.Printf("dropped %d edges referencing unknown nodes", dropped)
	}
	return dropped
}

func (g *Graph) buildNodeIndex() {
	g.nodeIDs = make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		g.nodeIDs = append(g.nodeIDs, id)
	}
	sort.Slice(g.nodeIDs, func(i, j int) bool {
		return g.nodeIDs[i] < g.nodeIDs[j]
	})
	g.finalized = true
}

// NewGraphFromParts rebuilds a finalized graph from serialized nodes and edges. edge weights are taken as is.
func NewGraphFromParts(nodes []Node, edges []FlatEdge, ways []Way) *Graph {
	g := NewGraph()
	for _, n := range nodes {
		g.nodes[n.ID] = n
	}
	for _, w := range ways {
		g.ways[w.ID] = w
	}
	for _, e := range edges {
		g.adjacency[e.From] = append(g.adjacency[e.From], Edge{To: e.To, Weight: e.Weight, WayID: e.WayID})
	}
	for from := range g.adjacency {
		edges := g.adjacency[from]
		sort.SliceStable(edges, func(i, j int) bool {
			return edges[i].To < edges[j].To
		})
	}
	g.numEdges = len(edges)
	g.buildNodeIndex()
	return g
}

func (g *Graph) IsFinalized() bool {
	return g.finalized
}

func (g *Graph) GetNode(id int64) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// GetOutEdges returns the outgoing edges of id ordered by target id. callers must not modify the slice.
func (g *Graph) GetOutEdges(id int64) []Edge {
	return g.adjacency[id]
}

func (g *Graph) GetWay(id int64) (Way, bool) {
	w, ok := g.ways[id]
	return w, ok
}

// NodeIDs returns all node ids in increasing order.
func (g *Graph) NodeIDs() []int64 {
	return g.nodeIDs
}

func (g *Graph) GetNumNodes() int {
	return len(g.nodes)
}

func (g *Graph) GetNumEdges() int {
	return g.numEdges
}

// Edges returns every edge of the graph ordered by source id and then target id.
func (g *Graph) Edges() []FlatEdge {
	edges := make([]FlatEdge, 0, g.numEdges)
	for _, from := range g.nodeIDs {
		for _, e := range g.adjacency[from] {
			edges = append(edges, FlatEdge{From: from, To: e.To, Weight: e.Weight, WayID: e.WayID})
		}
	}
	return edges
}

func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodeIDs))
	for _, id := range g.nodeIDs {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

func (g *Graph) Ways() []Way {
	ways := make([]Way, 0, len(g.ways))
	for _, w := range g.ways {
		ways = append(ways, w)
	}
	sort.Slice(ways, func(i, j int) bool {
		return ways[i].ID < ways[j].ID
	})
	return ways
}

// Bounds returns the bounding rectangle of all nodes.
func (g *Graph) Bounds() s2.Rect {
	lats := make([]float64, 0, len(g.nodeIDs))
	lons := make([]float64, 0, len(g.nodeIDs))
	for _, id := range g.nodeIDs {
		lats = append(lats, g.nodes[id].Lat)
		lons = append(lons, g.nodes[id].Lon)
	}
	return geo.BoundingRect(lats, lons)
}
