package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"movierec/internal/logging"
	"movierec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const maxRatingBody = 1 << 16

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler { return &RatingHandler{svc: s} }

// ratingRequest documenta el body; los campos aceptan número o string.
type ratingRequest struct {
	UserID  string `json:"user_id" example:"1"`
	MovieID string `json:"movie_id" example:"42"`
	Rating  string `json:"rating" example:"4.5"`
}

// @Summary Crear/actualizar rating
// @Tags ratings
// @Accept json
// @Produce json
// @Param body body ratingRequest true "rating (1 a 5)"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rate [post]
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRatingBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		writeError(w, http.StatusBadRequest, service.MsgEmptyBody)
		return
	}

	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	in, err := service.ParseRatingPayload(body)
	if err == nil {
		err = h.svc.Submit(r.Context(), in)
	}
	if err != nil {
		var inErr *service.InputError
		if errors.As(err, &inErr) {
			writeError(w, http.StatusBadRequest, inErr.Msg)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("error guardando rating")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Rating submitted successfully"})
}

// @Summary Listar ratings del usuario
// @Tags ratings
// @Produce json
// @Param id path string true "user_id"
// @Success 200 {array} models.Rating
// @Router /users/{id}/ratings [get]
func (h *RatingHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}
