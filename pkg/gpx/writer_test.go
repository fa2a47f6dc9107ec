package gpx

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	path := datastructure.NewCoordinates([]float64{-7.56, -7.561, -7.562}, []float64{110.82, 110.82, 110.821})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, path))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `creator="Nogivan"`)
	assert.Contains(t, out, `<wpt lat="-7.561" lon="110.82"></wpt>`)

	var doc Document
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "1.1", doc.Version)
	require.Len(t, doc.Waypoints, 3)
	for i, w := range doc.Waypoints {
		assert.Equal(t, path[i].Lat, w.Lat)
		assert.Equal(t, path[i].Lon, w.Lon)
	}
}

func TestWriteFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "route.gpx")
	require.NoError(t, WriteFile(fileName, []datastructure.Coordinate{datastructure.NewCoordinate(0, 0)}))

	bb, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(bb), `<wpt lat="0" lon="0"></wpt>`)
}
