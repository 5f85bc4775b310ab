package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"movierec/internal/models"
)

var errBoom = errors.New("boom")

// memCatalog es un CatalogStore en memoria que cuenta las cargas completas.
type memCatalog struct {
	mu      sync.Mutex
	movies  []models.Movie
	version int
	loads   int
	err     error
}

func (c *memCatalog) LoadCatalog(ctx context.Context) ([]models.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	c.loads++
	return append([]models.Movie(nil), c.movies...), nil
}

func (c *memCatalog) ListMovies(ctx context.Context) ([]models.MovieSummary, error) {
	movies, err := c.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.MovieSummary, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Summary())
	}
	return out, nil
}

func (c *memCatalog) GetByID(ctx context.Context, movieID string) (*models.Movie, error) {
	movies, err := c.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].MovieID == models.NormalizeID(movieID) {
			return &movies[i], nil
		}
	}
	return nil, nil
}

func (c *memCatalog) Version(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	return fmt.Sprintf("v%d", c.version), nil
}

func (c *memCatalog) bump(movies []models.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = movies
	c.version++
}

// memRatings es un RatingStore en memoria con upsert por par.
type memRatings struct {
	mu      sync.Mutex
	ratings []models.Rating
	writes  int
	lists   int
	err     error
}

func (r *memRatings) UpsertRating(ctx context.Context, userID, movieID string, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes++
	for i := range r.ratings {
		if r.ratings[i].UserID == userID && r.ratings[i].MovieID == movieID {
			r.ratings[i].Rating = rating
			return nil
		}
	}
	r.ratings = append(r.ratings, models.Rating{UserID: userID, MovieID: movieID, Rating: rating})
	return nil
}

func (r *memRatings) ListRatings(ctx context.Context) ([]models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.lists++
	return append([]models.Rating(nil), r.ratings...), nil
}

func (r *memRatings) Version(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("w%d", r.writes), nil
}

type memHistory struct {
	mu   sync.Mutex
	recs []models.Recommendation
}

func (h *memHistory) Insert(ctx context.Context, rec *models.Recommendation) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = append(h.recs, *rec)
	return nil
}

func (h *memHistory) FindBySubject(ctx context.Context, algo, subject string, limit int64) ([]models.Recommendation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []models.Recommendation
	for i := len(h.recs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if h.recs[i].Algo == algo && h.recs[i].Subject == subject {
			out = append(out, h.recs[i])
		}
	}
	return out, nil
}

func sampleMovies() []models.Movie {
	return []models.Movie{
		{MovieID: "m1", MovieName: "Star Quest", Year: "1999", Genre: "Sci-Fi", Language: "English",
			Overview: "space crew battles alien invaders", Cast: "John Smith"},
		{MovieID: "m2", MovieName: "Galaxy Raid", Year: "2001", Genre: "Sci-Fi", Language: "English",
			Overview: "alien invaders attack space station", Cast: "Ann Park"},
		{MovieID: "m3", MovieName: "Quiet Town", Year: "", Genre: "Drama", Language: "",
			Overview: "family grief in a small town", Cast: "Bob Lee"},
	}
}
