package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/nogivan/pkg/datastructure"
	"github.com/lintang-b-s/nogivan/pkg/server/rest/service"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (service.ShortestPathResult, error)
	ShortestPathGPX(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) ([]byte, error)
	DistanceMatrix(ctx context.Context, sources, targets []datastructure.Coordinate) ([][]int64, error)
}

type NavigationHandler struct {
	svc      NavigationService
	metrics  *Metrics
	validate *validator.Validate
	trans    ut.Translator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *Metrics) {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, metrics: m, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/shortest-path/gpx", handler.shortestPathGPX)
			r.Post("/distance-matrix", handler.distanceMatrix)
		})
	})
}

// Coord model info
//
//	@Description	model for a coordinate
type Coord struct {
	Lat float64 `json:"lat" validate:"lte=90,gte=-90"`
	Lon float64 `json:"lon" validate:"lte=180,gte=-180"`
}

// ShortestPathRequest model info
//
//	@Description	request body for a shortest path query between two coordinates
type ShortestPathRequest struct {
	SrcLat float64 `json:"src_lat" validate:"lte=90,gte=-90"`
	SrcLon float64 `json:"src_lon" validate:"lte=180,gte=-180"`
	DstLat float64 `json:"dst_lat" validate:"lte=90,gte=-90"`
	DstLon float64 `json:"dst_lon" validate:"lte=180,gte=-180"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	return nil
}

// ShortestPathResponse model info
//
//	@Description	response body for a shortest path query
type ShortestPathResponse struct {
	Path          string                     `json:"path"`
	Dist          int64                      `json:"distance"`
	Coordinates   []datastructure.Coordinate `json:"coordinates"`
	NodeIDs       []int64                    `json:"node_ids"`
	Resets        int                        `json:"resets"`
	ExpandedNodes int                        `json:"expanded_nodes"`
	Cached        bool                       `json:"cached"`
}

func RenderShortestPathResponse(res service.ShortestPathResult) *ShortestPathResponse {
	return &ShortestPathResponse{
		Path:          res.Polyline,
		Dist:          res.Dist,
		Coordinates:   res.Path,
		NodeIDs:       res.NodeIDs,
		Resets:        res.Resets,
		ExpandedNodes: res.Expanded,
		Cached:        res.Cached,
	}
}

// validateRequest renders a 400 response and returns false when data fails validation.
func (h *NavigationHandler) validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		vv := translateError(err, h.trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

// shortestPath
//
//	@Summary		shortest path between two coordinates, both snapped to their closest road network node.
//	@Description	shortest path between two coordinates, both snapped to their closest road network node. distance in meters.
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body shortest path query"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, *data) {
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	h.metrics.observeRoute(res.Expanded, res.Resets, res.Cached)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderShortestPathResponse(res))
}

// shortestPathGPX
//
//	@Summary		shortest path between two coordinates as a gpx file.
//	@Description	shortest path between two coordinates as a gpx file, one waypoint per road network node.
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body shortest path query"
//	@Accept			application/json
//	@Produce		application/gpx+xml
//	@Router			/navigations/shortest-path/gpx [post]
//	@Success		200	{string}	string
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPathGPX(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, *data) {
		return
	}

	bb, err := h.svc.ShortestPathGPX(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/gpx+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="route.gpx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(bb)
}

// DistanceMatrixRequest model info
//
//	@Description	request body for a many to many distance query
type DistanceMatrixRequest struct {
	Sources []Coord `json:"sources" validate:"required,min=1,dive"`
	Targets []Coord `json:"targets" validate:"required,min=1,dive"`
}

func (s *DistanceMatrixRequest) Bind(r *http.Request) error {
	if len(s.Sources) == 0 || len(s.Targets) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// DistanceMatrixResponse model info
//
//	@Description	response body for a many to many distance query. distances[i][j] is the distance in meters from source i to target j, -1 if unreachable.
type DistanceMatrixResponse struct {
	Distances [][]int64 `json:"distances"`
}

func toCoordinates(coords []Coord) []datastructure.Coordinate {
	out := make([]datastructure.Coordinate, 0, len(coords))
	for _, c := range coords {
		out = append(out, datastructure.NewCoordinate(c.Lat, c.Lon))
	}
	return out
}

// distanceMatrix
//
//	@Summary		shortest path distance from every source to every target.
//	@Description	shortest path distance in meters from every source to every target, -1 when a target is unreachable.
//	@Tags			navigations
//	@Param			body	body	DistanceMatrixRequest	true	"request body distance matrix query"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/distance-matrix [post]
//	@Success		200	{object}	DistanceMatrixResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) distanceMatrix(w http.ResponseWriter, r *http.Request) {
	data := &DistanceMatrixRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, *data) {
		return
	}

	matrix, err := h.svc.DistanceMatrix(r.Context(), toCoordinates(data.Sources), toCoordinates(data.Targets))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &DistanceMatrixResponse{Distances: matrix})
}
