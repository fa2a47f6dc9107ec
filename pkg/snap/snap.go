package snap

import (
	"errors"
	"log"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/geo"
)

var (
	ErrEmptyGraph = errors.New("graph has no nodes to snap to")
)

type Graph interface {
	NodeIDs() []int64
	GetNode(id int64) (datastructure.Node, bool)
}

// Closest returns the node with the smallest great-circle distance to lat,lon. ties go to the smallest node id.
func Closest(g Graph, lat, lon float64) (datastructure.Node, error) {
	var (
		best     datastructure.Node
		bestDist int64
		found    bool
	)

	for _, id := range g.NodeIDs() {
		node, _ := g.GetNode(id)
		dist := node.DistanceTo(lat, lon)
		if !found || closer(dist, node.ID, bestDist, best.ID) {
			best, bestDist, found = node, dist, true
		}
	}

	if !found {
		return datastructure.Node{}, ErrEmptyGraph
	}
	return best, nil
}

func closer(dist, id, bestDist, bestID int64) bool {
	return dist < bestDist || (dist == bestDist && id < bestID)
}

// LinearSnapper scans every node on each query.
type LinearSnapper struct {
	graph Graph
}

func NewLinearSnapper(g Graph) *LinearSnapper {
	return &LinearSnapper{graph: g}
}

func (ls *LinearSnapper) SnapToNode(lat, lon float64) (datastructure.Node, error) {
	return Closest(ls.graph, lat, lon)
}

type rtreeNode struct {
	node  datastructure.Node
	point rtreego.Point
}

func (n *rtreeNode) Bounds() rtreego.Rect {
	return n.point.ToRect(pointTolerance)
}

const (
	pointTolerance = 1e-12
	// slack for float rounding between the chord and the haversine formula
	chordSlack = 1e-9
)

/*
RtreeSnapper. same answer as Closest, but nodes are indexed in an r-tree by their position on the unit sphere.
chord length between unit vectors is monotonic in great-circle distance, so the nearest neighbour in the tree is
also the nearest node on the earth. distances are truncated to whole meters and equal distances go to the
smallest id, so every node inside the chord of (best distance + 1 m) is compared exactly.
*/
type RtreeSnapper struct {
	rtree *rtreego.Rtree
	size  int
}

func NewRtreeSnapper(g Graph) *RtreeSnapper {
	ids := g.NodeIDs()
	objs := make([]rtreego.Spatial, 0, len(ids))
	for idx, id := range ids {
		node, _ := g.GetNode(id)
		v := geo.UnitVector(node.Lat, node.Lon)
		objs = append(objs, &rtreeNode{node: node, point: rtreego.Point{v[0], v[1], v[2]}})

		if (idx+1)%100000 == 0 {
			log.Printf("indexing graph nodes: %d...", idx+1)
		}
	}

	return &RtreeSnapper{
		rtree: rtreego.NewTree(3, 25, 50, objs...),
		size:  len(objs),
	}
}

func (rs *RtreeSnapper) SnapToNode(lat, lon float64) (datastructure.Node, error) {
	if rs.size == 0 {
		return datastructure.Node{}, ErrEmptyGraph
	}

	v := geo.UnitVector(lat, lon)
	query := rtreego.Point{v[0], v[1], v[2]}

	nearest := rs.rtree.NearestNeighbor(query).(*rtreeNode)
	bestDist := nearest.node.DistanceTo(lat, lon)

	radius := geo.ChordLength(float64(bestDist+1)) + chordSlack
	bound, err := rtreego.NewRectFromPoints(
		rtreego.Point{v[0] - radius, v[1] - radius, v[2] - radius},
		rtreego.Point{v[0] + radius, v[1] + radius, v[2] + radius},
	)
	if err != nil {
		return datastructure.Node{}, err
	}

	best := nearest.node
	for _, obj := range rs.rtree.SearchIntersect(bound) {
		candidate := obj.(*rtreeNode).node
		dist := candidate.DistanceTo(lat, lon)
		if closer(dist, candidate.ID, bestDist, best.ID) {
			best, bestDist = candidate, dist
		}
	}
	return best, nil
}
