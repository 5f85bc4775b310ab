// Package metrics expone los contadores e histogramas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Recomendaciones
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_recommendation_duration_seconds",
			Help:    "Time spent computing recommendations (cache misses only)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine"}, // "content", "collaborative"
	)

	RecommendationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_recommendations_total",
			Help: "Recommendation requests by engine and outcome",
		},
		[]string{"engine", "outcome"}, // "ok", "cached", "empty", "user_not_found", "error"
	)

	// Ratings
	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_ratings_submitted_total",
			Help: "Rating submissions by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid", "error"
	)

	// Cache Redis
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)
)

// ObserveRecommendation registra la duración de un cálculo de recomendaciones.
func ObserveRecommendation(engine string, start time.Time) {
	RecommendationDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
}

// Middleware mide cada request usando el patrón de ruta de chi como label
// (evita cardinalidad alta con ids en el path).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
