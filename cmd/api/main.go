package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "movierec/docs" // swagger docs

	"movierec/internal/cache"
	"movierec/internal/config"
	"movierec/internal/db"
	"movierec/internal/handler"
	"movierec/internal/logging"
	"movierec/internal/repository"
	"movierec/internal/service"
)

// @title movierec Movie Recommender API
// @version 1.0
// @description Catálogo, ratings y recomendaciones (contenido y colaborativas) sobre CSV.
// @host localhost:5000
// @BasePath /
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo (opcional: backend de ratings y/o historial)
	var mongo *db.Mongo
	if cfg.UsesMongo() {
		m, err := db.InitMongo(ctx, cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("no se pudo conectar a Mongo")
		}
		mongo = m
		defer mongo.Close(context.Background())
	}

	// Redis (opcional: cache de recomendaciones)
	var recCache *cache.Cache
	if cfg.RedisAddr != "" {
		c, err := cache.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			logging.Fatal().Err(err).Msg("no se pudo conectar a Redis")
		}
		recCache = c
		defer recCache.Close()
	}

	// repos
	movieRepo := repository.NewMovieRepository(cfg.MoviesCSV)

	var ratingRepo service.RatingStore
	switch cfg.RatingsBackend {
	case config.RatingsBackendMongo:
		mr := repository.NewMongoRatingRepository(mongo.DB)
		if err := mr.EnsureIndexes(ctx); err != nil {
			logging.Fatal().Err(err).Msg("no se pudo crear el índice de ratings")
		}
		ratingRepo = mr
	case config.RatingsBackendCSV:
		ratingRepo = repository.NewCSVRatingRepository(cfg.RatingsCSV)
	default:
		logging.Fatal().Str("backend", cfg.RatingsBackend).Msg("RATINGS_BACKEND inválido (csv|mongo)")
	}

	var history service.HistoryStore
	if cfg.HistoryEnabled {
		history = repository.NewRecommendationRepository(mongo.DB)
	}

	// services
	movieSvc := service.NewMovieService(movieRepo, ratingRepo)
	ratingSvc := service.NewRatingService(ratingRepo)
	recSvc := service.NewRecommendService(movieRepo, ratingRepo, history, recCache, cfg.CacheTTL)

	// handlers
	r := handler.NewRouter(handler.RouterConfig{
		CORSOrigins:       cfg.CORSOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	}, handler.Handlers{
		Movies:    handler.NewMovieHandler(movieSvc),
		Ratings:   handler.NewRatingHandler(ratingSvc),
		Recommend: handler.NewRecommendHandler(recSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("error cerrando el servidor HTTP")
		}
	}()

	logging.Info().
		Str("port", cfg.HTTPPort).
		Str("movies", cfg.MoviesCSV).
		Str("ratings_backend", cfg.RatingsBackend).
		Bool("cache", recCache != nil).
		Bool("history", history != nil).
		Msg("HTTP escuchando")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("servidor HTTP terminó con error")
	}
}
