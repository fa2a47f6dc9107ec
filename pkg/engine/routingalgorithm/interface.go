package routingalgorithm

import "github.com/lintang-b-s/nogivan/pkg/datastructure"

type Graph interface {
	NodeIDs() []int64
	GetNode(id int64) (datastructure.Node, bool)
	GetOutEdges(id int64) []datastructure.Edge
}

type Snapper interface {
	SnapToNode(lat, lon float64) (datastructure.Node, error)
}
