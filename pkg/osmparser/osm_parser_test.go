package osmparser

import (
	"context"
	"strings"
	"testing"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMap = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="-7.5600" lon="110.8200"/>
 <node id="2" lat="-7.5610" lon="110.8200"/>
 <node id="3" lat="-7.5620" lon="110.8200"/>
 <node id="4" lat="-7.5620" lon="110.8210"/>
 <node id="5" lat="-7.5630" lon="110.8210"/>
 <node id="6" lat="-7.5640" lon="110.8210"/>
 <node id="99" lat="-7.0000" lon="110.0000"/>
 <way id="10">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="highway" v="residential"/>
  <tag k="name" v="Jalan Slamet Riyadi"/>
 </way>
 <way id="11">
  <nd ref="3"/>
  <nd ref="4"/>
  <tag k="highway" v="primary"/>
  <tag k="oneway" v="yes"/>
 </way>
 <way id="12">
  <nd ref="4"/>
  <nd ref="5"/>
  <tag k="highway" v="secondary"/>
  <tag k="oneway" v="-1"/>
 </way>
 <way id="13">
  <nd ref="5"/>
  <nd ref="6"/>
  <tag k="highway" v="construction"/>
 </way>
 <way id="14">
  <nd ref="5"/>
  <nd ref="6"/>
  <tag k="building" v="yes"/>
 </way>
 <way id="15">
  <nd ref="5"/>
  <nd ref="100"/>
  <tag k="highway" v="service"/>
 </way>
</osm>`

func targets(edges []datastructure.Edge) []int64 {
	ids := make([]int64, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.To)
	}
	return ids
}

func TestParseReader(t *testing.T) {
	p := NewOSMParser()
	g := datastructure.NewGraph()

	err := p.ParseReader(context.Background(), strings.NewReader(testMap), FormatXML, g)
	require.NoError(t, err)
	dropped := g.Finalize()

	// 5 -> 100 and back, node 100 never appears
	assert.Equal(t, 2, dropped)

	stats := p.Stats()
	assert.Equal(t, 4, stats.Ways)
	assert.Equal(t, 2, stats.SkippedWays)
	assert.Equal(t, 7, stats.Nodes)
	assert.Equal(t, 5, stats.KeptNodes)

	// 6 is only on skipped ways, 99 on none
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, g.NodeIDs())

	assert.Equal(t, []int64{2}, targets(g.GetOutEdges(1)))
	assert.Equal(t, []int64{1, 3}, targets(g.GetOutEdges(2)))
	assert.Equal(t, []int64{2, 4}, targets(g.GetOutEdges(3)))
	// oneway=-1 runs against the node order
	assert.Empty(t, g.GetOutEdges(4))
	assert.Equal(t, []int64{4}, targets(g.GetOutEdges(5)))

	way, ok := g.GetWay(10)
	require.True(t, ok)
	assert.Equal(t, "Jalan Slamet Riyadi", way.Name)
	assert.False(t, way.OneWay)

	way, ok = g.GetWay(12)
	require.True(t, ok)
	assert.True(t, way.OneWay)
}

func TestParseReaderDuplicateWay(t *testing.T) {
	doc := `<osm version="0.6">
 <way id="10"><nd ref="1"/><nd ref="2"/><tag k="highway" v="residential"/></way>
 <way id="10"><nd ref="2"/><nd ref="3"/><tag k="highway" v="residential"/></way>
</osm>`

	err := NewOSMParser().ParseReader(context.Background(), strings.NewReader(doc), FormatXML, datastructure.NewGraph())
	assert.ErrorIs(t, err, ErrDuplicateWay)
}

func TestFormatFromPath(t *testing.T) {
	format, err := FormatFromPath("solo.osm.pbf")
	require.NoError(t, err)
	assert.Equal(t, FormatPBF, format)

	format, err = FormatFromPath("solo.OSM")
	require.NoError(t, err)
	assert.Equal(t, FormatXML, format)

	_, err = FormatFromPath("solo.geojson")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
