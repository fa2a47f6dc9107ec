package snap

import (
	"testing"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func buildGraph(nodes []datastructure.Node) *datastructure.Graph {
	g := datastructure.NewGraph()
	ids := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	g.AddWay(1, ids, false, "")
	for _, n := range nodes {
		g.AddNode(n.ID, n.Lat, n.Lon)
	}
	g.Finalize()
	return g
}

func TestClosestTieBreaksOnSmallestID(t *testing.T) {
	// 7 and 5 are mirrored around the query point
	g := buildGraph([]datastructure.Node{
		datastructure.NewNode(7, 0, 0.001),
		datastructure.NewNode(5, 0, -0.001),
		datastructure.NewNode(9, 0.01, 0),
	})

	node, err := Closest(g, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), node.ID)

	node, err = NewRtreeSnapper(g).SnapToNode(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), node.ID)
}

func TestClosestEmptyGraph(t *testing.T) {
	g := datastructure.NewGraph()
	g.Finalize()

	_, err := Closest(g, 0, 0)
	assert.ErrorIs(t, err, ErrEmptyGraph)

	_, err = NewRtreeSnapper(g).SnapToNode(0, 0)
	assert.ErrorIs(t, err, ErrEmptyGraph)

	_, err = NewLinearSnapper(g).SnapToNode(0, 0)
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestRtreeSnapperMatchesLinearScan(t *testing.T) {
	rand.Seed(11)

	nodes := make([]datastructure.Node, 0, 500)
	for i := 0; i < 500; i++ {
		lat := 47.60 + rand.Float64()*0.02
		lon := -122.34 + rand.Float64()*0.02
		nodes = append(nodes, datastructure.NewNode(int64(1000-i), lat, lon))
	}
	// duplicate positions, only the smallest id may win
	nodes = append(nodes, datastructure.NewNode(5000, nodes[10].Lat, nodes[10].Lon))
	nodes = append(nodes, datastructure.NewNode(1, nodes[20].Lat, nodes[20].Lon))

	g := buildGraph(nodes)
	linear := NewLinearSnapper(g)
	indexed := NewRtreeSnapper(g)

	queries := [][2]float64{
		{nodes[10].Lat, nodes[10].Lon},
		{nodes[20].Lat, nodes[20].Lon},
		{47.0, -122.0},
	}
	for i := 0; i < 300; i++ {
		queries = append(queries, [2]float64{47.595 + rand.Float64()*0.03, -122.345 + rand.Float64()*0.03})
	}

	for _, q := range queries {
		want, err := linear.SnapToNode(q[0], q[1])
		require.NoError(t, err)
		got, err := indexed.SnapToNode(q[0], q[1])
		require.NoError(t, err)

		assert.Equal(t, want.ID, got.ID, "query %v", q)
	}

	node, err := indexed.SnapToNode(nodes[20].Lat, nodes[20].Lon)
	require.NoError(t, err)
	assert.Equal(t, int64(1), node.ID)
}
