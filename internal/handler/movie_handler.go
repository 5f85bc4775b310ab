// internal/handler/movie_handler.go
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"movierec/internal/logging"
	"movierec/internal/service"

	"github.com/go-chi/chi/v5"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(s *service.MovieService) *MovieHandler { return &MovieHandler{svc: s} }

// @Summary Listar el catálogo completo
// @Tags movies
// @Produce json
// @Success 200 {array} models.MovieSummary
// @Failure 500 {object} errorResponse
// @Router /movies [get]
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.svc.List(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("error listando películas")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "movie_id"
// @Success 200 {object} models.MovieSummary
// @Failure 404 {object} errorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Movie with ID %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Top películas (popularidad o rating)
// @Tags movies
// @Produce json
// @Param metric query string false "popular|rating (default: popular)"
// @Param limit query int false "límite (default: 20, máx 100)"
// @Success 200 {array} models.MovieStat
// @Router /movies/top [get]
func (h *MovieHandler) Top(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = service.TopMetricPopular
	}
	if metric != service.TopMetricPopular && metric != service.TopMetricRating {
		writeError(w, http.StatusBadRequest, "metric must be popular or rating")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	movies, err := h.svc.Top(r.Context(), metric, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, movies)
}
