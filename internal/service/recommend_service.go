package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"movierec/internal/cache"
	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/models"
	"movierec/internal/recommend"
)

const (
	EngineContent       = "content"
	EngineCollaborative = "collaborative"

	DefaultCacheTTL = 10 * time.Minute
)

type RecommendService struct {
	movies   CatalogStore
	ratings  RatingStore
	history  HistoryStore // nil = sin historial
	cache    *cache.Cache // nil = sin cache
	cacheTTL time.Duration

	neighbors int
	results   int

	// índice de contenido memoizado por versión del catálogo
	mu    sync.Mutex
	index *contentIndex
}

type contentIndex struct {
	version string
	movies  []models.Movie
	ix      *recommend.SimilarityIndex
}

func NewRecommendService(
	m CatalogStore,
	r RatingStore,
	history HistoryStore,
	c *cache.Cache,
	cacheTTL time.Duration,
) *RecommendService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &RecommendService{
		movies:    m,
		ratings:   r,
		history:   history,
		cache:     c,
		cacheTTL:  cacheTTL,
		neighbors: recommend.DefaultNeighbors,
		results:   recommend.DefaultResults,
	}
}

func contentKey(movieID, catalogVer string) string {
	return fmt.Sprintf("rec:content:movie:%s:c:%s", movieID, catalogVer)
}

func collaborativeKey(userID, ratingsVer, catalogVer string) string {
	return fmt.Sprintf("rec:collab:user:%s:r:%s:c:%s", userID, ratingsVer, catalogVer)
}

// Content es recommend_similar: hasta 4 películas parecidas, nunca la misma.
// Un id desconocido devuelve un slice vacío, no un error.
func (s *RecommendService) Content(ctx context.Context, movieID string) ([]models.MovieSummary, error) {
	movieID = models.NormalizeID(movieID)

	catalogVer, err := s.movies.Version(ctx)
	if err != nil {
		metrics.RecommendationOutcomes.WithLabelValues(EngineContent, "error").Inc()
		return nil, err
	}

	key := contentKey(movieID, catalogVer)
	var cached []models.MovieSummary
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		metrics.RecommendationOutcomes.WithLabelValues(EngineContent, "cached").Inc()
		return cached, nil
	} else if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("error leyendo cache Redis")
	}

	start := time.Now()
	ci, err := s.contentIndex(ctx, catalogVer)
	if err != nil {
		metrics.RecommendationOutcomes.WithLabelValues(EngineContent, "error").Inc()
		return nil, err
	}
	similar := recommend.SimilarWithIndex(ci.ix, ci.movies, movieID, s.results)
	metrics.ObserveRecommendation(EngineContent, start)

	items := make([]models.MovieSummary, 0, len(similar))
	for _, m := range similar {
		items = append(items, m.Summary())
	}
	outcome := "ok"
	if len(items) == 0 {
		outcome = "empty"
	}
	metrics.RecommendationOutcomes.WithLabelValues(EngineContent, outcome).Inc()

	s.record(ctx, models.AlgoContent, movieID, map[string]any{"n": s.results, "catalogVersion": catalogVer}, items)
	s.store(ctx, key, items)
	return items, nil
}

// contentIndex devuelve el índice del catálogo, reconstruyéndolo solo si cambió la versión.
func (s *RecommendService) contentIndex(ctx context.Context, version string) (*contentIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil && s.index.version == version {
		return s.index, nil
	}
	movies, err := s.movies.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	ci := &contentIndex{
		version: version,
		movies:  movies,
		ix:      recommend.NewSimilarityIndex(movies),
	}
	s.index = ci
	logging.Ctx(ctx).Debug().
		Int("movies", ci.ix.Len()).
		Int("vocabulary", ci.ix.VocabularySize()).
		Msg("índice de contenido reconstruido")
	return ci, nil
}

// Collaborative es recommend_for_user. Devuelve recommend.ErrUserNotFound si el
// usuario no tiene ratings y recommend.ErrNoRecommendations si ya vio todo.
func (s *RecommendService) Collaborative(ctx context.Context, userID string) ([]models.MovieSummary, error) {
	userID = models.NormalizeID(userID)

	ratingsVer, err := s.ratings.Version(ctx)
	if err != nil {
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "error").Inc()
		return nil, err
	}
	catalogVer, err := s.movies.Version(ctx)
	if err != nil {
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "error").Inc()
		return nil, err
	}

	key := collaborativeKey(userID, ratingsVer, catalogVer)
	var cached []models.MovieSummary
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "cached").Inc()
		return cached, nil
	} else if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("error leyendo cache Redis")
	}

	start := time.Now()
	ratings, err := s.ratings.ListRatings(ctx)
	if err != nil {
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "error").Inc()
		return nil, err
	}
	catalog, err := s.movies.LoadCatalog(ctx)
	if err != nil {
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "error").Inc()
		return nil, err
	}

	scored, err := recommend.ForUser(ratings, userID, s.neighbors, s.results)
	metrics.ObserveRecommendation(EngineCollaborative, start)
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "user_not_found").Inc()
		return nil, err
	case errors.Is(err, recommend.ErrNoRecommendations):
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "empty").Inc()
		return nil, err
	case err != nil:
		metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "error").Inc()
		return nil, err
	}

	// join con el catálogo: ids sin película se descartan
	byID := make(map[string]models.Movie, len(catalog))
	for _, m := range catalog {
		if _, dup := byID[m.MovieID]; !dup {
			byID[m.MovieID] = m
		}
	}
	items := make([]models.MovieSummary, 0, len(scored))
	for _, sm := range scored {
		if m, ok := byID[sm.MovieID]; ok {
			items = append(items, m.Summary())
		}
	}
	metrics.RecommendationOutcomes.WithLabelValues(EngineCollaborative, "ok").Inc()

	s.record(ctx, models.AlgoCollaborative, userID, map[string]any{
		"k":              s.neighbors,
		"n":              s.results,
		"scores":         scored,
		"ratingsVersion": ratingsVer,
	}, items)
	s.store(ctx, key, items)
	return items, nil
}

// History lista el historial guardado en Mongo; vacío si no está habilitado.
func (s *RecommendService) History(ctx context.Context, engine, subject string, limit int64) ([]models.Recommendation, error) {
	if s.history == nil {
		return []models.Recommendation{}, nil
	}
	algo := models.AlgoContent
	if engine == EngineCollaborative {
		algo = models.AlgoCollaborative
	}
	if limit <= 0 {
		limit = 20
	}
	out, err := s.history.FindBySubject(ctx, algo, models.NormalizeID(subject), limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Recommendation{}
	}
	return out, nil
}

// record guarda historial en Mongo (no rompemos la respuesta si falla).
func (s *RecommendService) record(ctx context.Context, algo, subject string, params map[string]any, items []models.MovieSummary) {
	if s.history == nil {
		return
	}
	hist := &models.Recommendation{
		Subject:          subject,
		Algo:             algo,
		SimilarityMetric: "cosine",
		Params:           params,
		Items:            items,
		CreatedAt:        time.Now(),
	}
	if err := s.history.Insert(ctx, hist); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("algo", algo).Msg("error guardando recomendación en Mongo")
	}
}

func (s *RecommendService) store(ctx context.Context, key string, items []models.MovieSummary) {
	if err := s.cache.SetJSON(ctx, key, items, s.cacheTTL); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", key).Msg("error cacheando recomendación en Redis")
	}
}
