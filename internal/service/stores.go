package service

import (
	"context"

	"movierec/internal/models"
)

// CatalogStore es el catálogo de películas (solo lectura).
type CatalogStore interface {
	LoadCatalog(ctx context.Context) ([]models.Movie, error)
	ListMovies(ctx context.Context) ([]models.MovieSummary, error)
	GetByID(ctx context.Context, movieID string) (*models.Movie, error)
	Version(ctx context.Context) (string, error)
}

// RatingStore es la tabla de ratings con upsert por (user_id, movie_id).
type RatingStore interface {
	UpsertRating(ctx context.Context, userID, movieID string, rating float64) error
	ListRatings(ctx context.Context) ([]models.Rating, error)
	Version(ctx context.Context) (string, error)
}

// HistoryStore guarda el historial de recomendaciones (opcional).
type HistoryStore interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	FindBySubject(ctx context.Context, algo, subject string, limit int64) ([]models.Recommendation, error)
}
