package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nogivan/pkg/server"
	"github.com/lintang-b-s/nogivan/pkg/server/rest/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *datastructure.Graph {
	g := datastructure.NewGraph()
	g.AddWay(100, []int64{1, 2, 3}, false, "Jalan Slamet Riyadi")
	g.AddWay(101, []int64{3, 4}, true, "")
	g.AddNode(1, -7.5600, 110.8200)
	g.AddNode(2, -7.5600, 110.8220)
	g.AddNode(3, -7.5600, 110.8240)
	g.AddNode(4, -7.5620, 110.8240)
	g.Finalize()
	return g
}

func newTestRouter(t *testing.T, svc NavigationService) (*chi.Mux, *Metrics) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	NavigatorRouter(r, svc, m)
	return r, m
}

func newTestServer(t *testing.T) (*chi.Mux, *Metrics) {
	g := testGraph()
	svc := service.NewNavigationService(g, nil, routingalgorithm.NewRouteAlgorithm(g), 2)
	return newTestRouter(t, svc)
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	var bb []byte
	switch b := body.(type) {
	case string:
		bb = []byte(b)
	default:
		var err error
		bb, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(bb))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestShortestPathHandler(t *testing.T) {
	r, m := newTestServer(t)

	rec := post(t, r, "/api/navigations/shortest-path", ShortestPathRequest{
		SrcLat: -7.5600, SrcLon: 110.8200, DstLat: -7.5620, DstLon: 110.8240,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ShortestPathResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int64{1, 2, 3, 4}, resp.NodeIDs)
	assert.Len(t, resp.Coordinates, 4)
	assert.Positive(t, resp.Dist)
	assert.NotEmpty(t, resp.Path)
	assert.False(t, resp.Cached)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.routeCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/navigations/shortest-path", http.MethodPost, "200")))
}

func TestShortestPathHandlerBadRequest(t *testing.T) {
	r, _ := newTestServer(t)

	rec := post(t, r, "/api/navigations/shortest-path", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, r, "/api/navigations/shortest-path", ShortestPathRequest{
		SrcLat: 100, SrcLon: 110.8200, DstLat: -7.5620, DstLon: 110.8240,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ErrValidation, 1)
}

func TestShortestPathHandlerNotFound(t *testing.T) {
	r, _ := newTestServer(t)

	// against the one-way street
	rec := post(t, r, "/api/navigations/shortest-path", ShortestPathRequest{
		SrcLat: -7.5620, SrcLon: 110.8240, DstLat: -7.5600, DstLon: 110.8200,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// outside of the map
	rec = post(t, r, "/api/navigations/shortest-path", ShortestPathRequest{
		SrcLat: -6.2, SrcLon: 106.8, DstLat: -7.5600, DstLon: 110.8200,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ErrorText, "not covered")
}

func TestShortestPathGPXHandler(t *testing.T) {
	r, _ := newTestServer(t)

	rec := post(t, r, "/api/navigations/shortest-path/gpx", ShortestPathRequest{
		SrcLat: -7.5600, SrcLon: 110.8200, DstLat: -7.5600, DstLon: 110.8240,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/gpx+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<wpt "))
}

func TestDistanceMatrixHandler(t *testing.T) {
	r, _ := newTestServer(t)

	rec := post(t, r, "/api/navigations/distance-matrix", DistanceMatrixRequest{
		Sources: []Coord{{Lat: -7.5600, Lon: 110.8200}, {Lat: -7.5620, Lon: 110.8240}},
		Targets: []Coord{{Lat: -7.5620, Lon: 110.8240}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DistanceMatrixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Distances, 2)
	assert.Positive(t, resp.Distances[0][0])
	assert.Equal(t, int64(0), resp.Distances[1][0])

	rec = post(t, r, "/api/navigations/distance-matrix", DistanceMatrixRequest{
		Targets: []Coord{{Lat: -7.5620, Lon: 110.8240}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type failingService struct{}

func (failingService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (service.ShortestPathResult, error) {
	return service.ShortestPathResult{}, server.WrapErrorf(errors.New("decrease key of node 3"), server.ErrInternalServerError, "internal server error")
}

func (failingService) ShortestPathGPX(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) ([]byte, error) {
	return nil, errors.New("disk full")
}

func (failingService) DistanceMatrix(ctx context.Context, sources, targets []datastructure.Coordinate) ([][]int64, error) {
	return nil, server.NewErrorf(server.ErrBadParamInput, "distance matrix is limited to 2500 cells")
}

func TestHandlerServiceErrors(t *testing.T) {
	r, _ := newTestRouter(t, failingService{})
	req := ShortestPathRequest{SrcLat: -7.56, SrcLon: 110.82, DstLat: -7.56, DstLon: 110.824}

	rec := post(t, r, "/api/navigations/shortest-path", req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.ErrorText)

	rec = post(t, r, "/api/navigations/shortest-path/gpx", req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk full")

	rec = post(t, r, "/api/navigations/distance-matrix", DistanceMatrixRequest{
		Sources: []Coord{{Lat: -7.56, Lon: 110.82}},
		Targets: []Coord{{Lat: -7.56, Lon: 110.82}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "2500 cells")
}
