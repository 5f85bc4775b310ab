package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"movierec/internal/logging"
	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// collaborative traduce los errores del motor: usuario inexistente => 404,
// sin candidatos => lista vacía.
func (h *RecommendHandler) collaborative(ctx context.Context, userID string) ([]models.MovieSummary, int, error) {
	items, err := h.svc.Collaborative(ctx, userID)
	switch {
	case err == nil:
		return items, http.StatusOK, nil
	case errors.Is(err, recommend.ErrUserNotFound):
		return nil, http.StatusNotFound, fmt.Errorf("User with ID %s not found", userID)
	case errors.Is(err, recommend.ErrNoRecommendations):
		return []models.MovieSummary{}, http.StatusOK, nil
	default:
		return nil, http.StatusInternalServerError, err
	}
}

// @Summary Recomendaciones colaborativas (usuarios similares)
// @Tags recommend
// @Produce json
// @Param user_id path string true "user_id"
// @Success 200 {array} models.MovieSummary
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /recommendations/collaborative/{user_id} [get]
func (h *RecommendHandler) GetCollaborative(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	items, status, err := h.collaborative(r.Context(), userID)
	if err != nil {
		if status == http.StatusInternalServerError {
			logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("error en recomendación colaborativa")
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Recomendaciones por contenido (películas similares)
// @Tags recommend
// @Produce json
// @Param movie_id path string true "movie_id"
// @Success 200 {array} models.MovieSummary
// @Failure 500 {object} errorResponse
// @Router /recommendations/content/{movie_id} [get]
func (h *RecommendHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movie_id")
	items, err := h.svc.Content(r.Context(), movieID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("movie_id", movieID).Msg("error en recomendación por contenido")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Historial de recomendaciones (requiere HISTORY_ENABLED)
// @Tags recommend
// @Produce json
// @Param kind path string true "content|collaborative"
// @Param id path string true "movie_id o user_id"
// @Param limit query int false "límite (default 20)"
// @Success 200 {array} models.Recommendation
// @Router /recommendations/history/{kind}/{id} [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != service.EngineContent && kind != service.EngineCollaborative {
		writeError(w, http.StatusBadRequest, "kind must be content or collaborative")
		return
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	list, err := h.svc.History(r.Context(), kind, chi.URLParam(r, "id"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// wsRequest es cada mensaje que manda el cliente por el WebSocket.
type wsRequest struct {
	Kind string `json:"kind"` // "content" | "collaborative"
	ID   string `json:"id"`
}

type wsResponse struct {
	Type        string                `json:"type"` // "recommendations" | "error"
	Kind        string                `json:"kind,omitempty"`
	ID          string                `json:"id,omitempty"`
	Items       []models.MovieSummary `json:"items,omitempty"`
	Error       string                `json:"error,omitempty"`
	Status      int                   `json:"status,omitempty"`
	GeneratedAt *time.Time            `json:"generatedAt,omitempty"`
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones por WebSocket
// @Description El cliente envía {"kind":"content|collaborative","id":"..."} y recibe una respuesta por mensaje.
// @Tags recommend
// @Router /ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		logging.Ctx(r.Context()).Warn().Err(err).Msg("no se pudo abrir WebSocket")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Ctx(ctx).Debug().Err(err).Msg("websocket cerrado")
			}
			return
		}

		resp := h.answer(ctx, req)
		if err := conn.WriteJSON(resp); err != nil {
			logging.Ctx(ctx).Debug().Err(err).Msg("error escribiendo en websocket")
			return
		}
	}
}

func (h *RecommendHandler) answer(ctx context.Context, req wsRequest) wsResponse {
	var (
		items  []models.MovieSummary
		status = http.StatusOK
		err    error
	)
	switch req.Kind {
	case service.EngineContent:
		items, err = h.svc.Content(ctx, req.ID)
		if err != nil {
			status = http.StatusInternalServerError
		}
	case service.EngineCollaborative:
		items, status, err = h.collaborative(ctx, req.ID)
	default:
		status, err = http.StatusBadRequest, fmt.Errorf("unknown kind %q", req.Kind)
	}
	if err != nil {
		return wsResponse{Type: "error", Kind: req.Kind, ID: req.ID, Error: err.Error(), Status: status}
	}
	now := time.Now()
	return wsResponse{
		Type:        "recommendations",
		Kind:        req.Kind,
		ID:          req.ID,
		Items:       items,
		Status:      status,
		GeneratedAt: &now,
	}
}
