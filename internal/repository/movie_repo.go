// internal/repository/movie_repo.go
package repository

import (
	"context"
	"errors"
	"os"

	"movierec/internal/models"
)

// Columnas del catálogo (project.csv).
const (
	colMovieID   = "movie_id"
	colMovieName = "movie_name"
	colYear      = "year"
	colGenre     = "genre"
	colLanguage  = "language"
	colOverview  = "overview"
	colCast      = "cast"
)

// MovieRepository da acceso de solo lectura al catálogo CSV.
// Cada llamada relee el archivo: no hay cache en memoria.
type MovieRepository struct {
	path string
}

func NewMovieRepository(path string) *MovieRepository {
	return &MovieRepository{path: path}
}

// LoadCatalog devuelve todas las películas en el orden del archivo.
// Campos faltantes quedan como "".
func (r *MovieRepository) LoadCatalog(ctx context.Context) ([]models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readTable(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storageErr("open", r.path, err)
		}
		return nil, err
	}

	out := make([]models.Movie, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, models.Movie{
			MovieID:   models.NormalizeID(t.get(row, colMovieID)),
			MovieName: t.get(row, colMovieName),
			Year:      normalizeYear(t.get(row, colYear)),
			Genre:     t.get(row, colGenre),
			Language:  t.get(row, colLanguage),
			Overview:  t.get(row, colOverview),
			Cast:      t.get(row, colCast),
		})
	}
	return out, nil
}

// ListMovies es el listado público: proyección con placeholders, en orden de almacenamiento.
func (r *MovieRepository) ListMovies(ctx context.Context) ([]models.MovieSummary, error) {
	movies, err := r.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.MovieSummary, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Summary())
	}
	return out, nil
}

// GetByID devuelve nil, nil si la película no existe.
func (r *MovieRepository) GetByID(ctx context.Context, movieID string) (*models.Movie, error) {
	movies, err := r.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	id := models.NormalizeID(movieID)
	for i := range movies {
		if movies[i].MovieID == id {
			return &movies[i], nil
		}
	}
	return nil, nil
}

func (r *MovieRepository) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fileVersion(r.path)
}

// normalizeYear quita el ".0" que deja pandas en años numéricos con NaN ("1999.0").
func normalizeYear(y string) string {
	if y == "" {
		return y
	}
	return models.NormalizeID(y)
}
