package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	routeExpanded prometheus.Histogram
	routeResets   prometheus.Histogram
	routeCache    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nogivan_http_requests_total",
			Help: "Total http requests by route, method and status code",
		}, []string{"path", "method", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nogivan_http_request_duration_seconds",
			Help:    "Http request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		routeExpanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nogivan_route_expanded_nodes",
			Help:    "Nodes taken from the frontier per shortest path query",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10),
		}),
		routeResets: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nogivan_route_resets",
			Help:    "Search restarts per shortest path query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		routeCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nogivan_route_cache_total",
			Help: "Shortest path queries answered from the route cache",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeRoute(expanded, resets int, cached bool) {
	if cached {
		m.routeCache.WithLabelValues("hit").Inc()
		return
	}
	m.routeCache.WithLabelValues("miss").Inc()
	m.routeExpanded.Observe(float64(expanded))
	m.routeResets.Observe(float64(resets))
}

// PromeHttpMiddleware records request count and latency per chi route pattern.
func PromeHttpMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.httpRequests.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
