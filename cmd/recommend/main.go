// Command recommend calcula recomendaciones offline directamente sobre los CSV,
// sin levantar el servidor HTTP. Útil para revisar resultados en lote.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"movierec/internal/config"
	"movierec/internal/logging"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/repository"
	"movierec/internal/service"

	"github.com/goccy/go-json"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

type result struct {
	Kind  string                `json:"kind"`
	ID    string                `json:"id"`
	Items []models.MovieSummary `json:"items"`
	Error string                `json:"error,omitempty"`
}

func main() {
	cfg := config.Load()

	var ids idList
	kind := flag.String("kind", service.EngineContent, "content|collaborative")
	movies := flag.String("movies", cfg.MoviesCSV, "catalog CSV path")
	ratings := flag.String("ratings", cfg.RatingsCSV, "ratings CSV path")
	flag.Var(&ids, "id", "movie_id (content) o user_id (collaborative); repetible o separado por comas")
	flag.Parse()

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console", Output: os.Stderr})

	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "al menos un -id es requerido")
		os.Exit(2)
	}
	if *kind != service.EngineContent && *kind != service.EngineCollaborative {
		fmt.Fprintf(os.Stderr, "kind inválido %q\n", *kind)
		os.Exit(2)
	}

	movieRepo := repository.NewMovieRepository(*movies)
	ratingRepo := repository.NewCSVRatingRepository(*ratings)
	svc := service.NewRecommendService(movieRepo, ratingRepo, nil, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	failed := false
	for _, id := range ids {
		start := time.Now()
		res := result{Kind: *kind, ID: id}

		var (
			items []models.MovieSummary
			err   error
		)
		if *kind == service.EngineContent {
			items, err = svc.Content(ctx, id)
		} else {
			items, err = svc.Collaborative(ctx, id)
		}
		switch {
		case errors.Is(err, recommend.ErrNoRecommendations):
			res.Items = []models.MovieSummary{}
		case err != nil:
			res.Error = err.Error()
			failed = true
		default:
			res.Items = items
		}

		logging.Debug().Str("kind", *kind).Str("id", id).Dur("elapsed", time.Since(start)).Msg("recomendación calculada")
		if err := enc.Encode(res); err != nil {
			logging.Fatal().Err(err).Msg("error escribiendo salida")
		}
	}
	if failed {
		os.Exit(1)
	}
}
