// internal/service/movie_service.go
package service

import (
	"context"
	"sort"

	"movierec/internal/models"
)

const (
	TopMetricPopular = "popular"
	TopMetricRating  = "rating"

	DefaultTopLimit = 20
	MaxTopLimit     = 100
)

type MovieService struct {
	movies  CatalogStore
	ratings RatingStore
}

func NewMovieService(m CatalogStore, r RatingStore) *MovieService {
	return &MovieService{movies: m, ratings: r}
}

// List es list_movies: catálogo completo, placeholders aplicados, orden de almacenamiento.
func (s *MovieService) List(ctx context.Context) ([]models.MovieSummary, error) {
	return s.movies.ListMovies(ctx)
}

// Get devuelve nil, nil si la película no existe.
func (s *MovieService) Get(ctx context.Context, movieID string) (*models.MovieSummary, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if err != nil || m == nil {
		return nil, err
	}
	sum := m.Summary()
	return &sum, nil
}

// Top por popularidad (count) o rating promedio, calculado sobre la tabla de ratings.
func (s *MovieService) Top(ctx context.Context, metric string, limit int) ([]models.MovieStat, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	} else if limit > MaxTopLimit {
		limit = MaxTopLimit
	}

	ratings, err := s.ratings.ListRatings(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.movies.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		sum   float64
		count int
	}
	stats := make(map[string]*agg)
	for _, r := range ratings {
		a := stats[r.MovieID]
		if a == nil {
			a = &agg{}
			stats[r.MovieID] = a
		}
		a.sum += r.Rating
		a.count++
	}

	out := make([]models.MovieStat, 0, len(stats))
	seen := make(map[string]bool, len(catalog))
	for _, m := range catalog {
		a := stats[m.MovieID]
		if a == nil || seen[m.MovieID] {
			continue
		}
		seen[m.MovieID] = true
		out = append(out, models.MovieStat{
			MovieSummary: m.Summary(),
			Average:      a.sum / float64(a.count),
			Count:        a.count,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if metric == TopMetricRating {
			if out[i].Average != out[j].Average {
				return out[i].Average > out[j].Average
			}
			return out[i].Count > out[j].Count
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Average > out[j].Average
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
