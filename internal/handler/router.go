package handler

import (
	"net/http"
	"time"

	"movierec/internal/logging"
	"movierec/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type RouterConfig struct {
	CORSOrigins []string
	// RateLimitRequests <= 0 desactiva el límite de POST /rate.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type Handlers struct {
	Movies    *MovieHandler
	Ratings   *RatingHandler
	Recommend *RecommendHandler
}

func NewRouter(cfg RouterConfig, h Handlers) chi.Router {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	// Películas
	r.Get("/movies", h.Movies.List)
	r.Get("/movies/top", h.Movies.Top)
	r.Get("/movies/{id}", h.Movies.GetMovie)

	// Ratings
	r.Group(func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		r.Post("/rate", h.Ratings.Rate)
	})
	r.Get("/users/{id}/ratings", h.Ratings.GetRatings)

	// Recomendaciones
	r.Route("/recommendations", func(r chi.Router) {
		r.Get("/collaborative/{user_id}", h.Recommend.GetCollaborative)
		r.Get("/content/{movie_id}", h.Recommend.GetContent)
		r.Get("/history/{kind}/{id}", h.Recommend.GetHistory)
	})
	r.Get("/ws/recommendations", h.Recommend.GetRecommendationsWS)

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
