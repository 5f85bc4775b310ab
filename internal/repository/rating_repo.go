package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"movierec/internal/models"
)

const (
	colUserID = "user_id"
	colRating = "rating"
)

var ratingsHeader = []string{colUserID, colMovieID, colRating}

// CSVRatingRepository guarda los ratings en un CSV (user_id, movie_id, rating).
// El read-modify-write de UpsertRating está serializado con un mutex:
// gana la última escritura por (user_id, movie_id).
type CSVRatingRepository struct {
	path   string
	mu     sync.RWMutex
	writes atomic.Uint64
}

func NewCSVRatingRepository(path string) *CSVRatingRepository {
	return &CSVRatingRepository{path: path}
}

func (r *CSVRatingRepository) UpsertRating(ctx context.Context, userID, movieID string, rating float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userID = models.NormalizeID(userID)
	movieID = models.NormalizeID(movieID)

	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := readTable(r.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		t = newTable(append([]string(nil), ratingsHeader...))
	case err != nil:
		return err
	case len(t.header) == 0:
		t = newTable(append([]string(nil), ratingsHeader...))
	}
	t.ensure(ratingsHeader...)

	value := formatRating(rating)
	updated := false
	for i, row := range t.rows {
		if models.NormalizeID(t.get(row, colUserID)) == userID &&
			models.NormalizeID(t.get(row, colMovieID)) == movieID {
			t.rows[i] = t.set(row, colRating, value)
			updated = true
		}
	}
	if !updated {
		row := make([]string, len(t.header))
		row = t.set(row, colUserID, userID)
		row = t.set(row, colMovieID, movieID)
		row = t.set(row, colRating, value)
		t.rows = append(t.rows, row)
	}

	if err := writeTable(r.path, t); err != nil {
		return err
	}
	r.writes.Add(1)
	return nil
}

// ListRatings devuelve la tabla completa; vacía si el archivo aún no existe.
func (r *CSVRatingRepository) ListRatings(ctx context.Context) ([]models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, err := readTable(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Rating{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]models.Rating, 0, len(t.rows))
	for line, row := range t.rows {
		raw := t.get(row, colRating)
		if raw == "" {
			continue // celda vacía = sin rating
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: rating %q no es numérico", ErrStorage, r.path, line+2, raw)
		}
		if math.IsNaN(v) {
			continue
		}
		out = append(out, models.Rating{
			UserID:  models.NormalizeID(t.get(row, colUserID)),
			MovieID: models.NormalizeID(t.get(row, colMovieID)),
			Rating:  v,
		})
	}
	return out, nil
}

// Version combina la huella del archivo con el contador de escrituras de este proceso
// (el mtime puede no cambiar entre dos escrituras muy seguidas).
func (r *CSVRatingRepository) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, err := fileVersion(r.path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-w%d", v, r.writes.Load()), nil
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
