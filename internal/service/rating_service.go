package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"movierec/internal/logging"
	"movierec/internal/metrics"
	"movierec/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// ErrInvalidInput marca errores de validación del cliente (400, nunca se reintenta).
var ErrInvalidInput = errors.New("invalid input")

// Mensajes devueltos por POST /rate.
const (
	MsgEmptyBody      = "Request body cannot be empty"
	MsgMissingData    = "Missing data"
	MsgRatingNotNum   = "Rating must be a number"
	MsgRatingOutRange = "Rating must be between 1 and 5"
)

// InputError lleva el mensaje que ve el cliente.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string        { return e.Msg }
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &InputError{Msg: msg} }

// RatingInput es un rating ya parseado, listo para validar.
type RatingInput struct {
	UserID  string  `validate:"required"`
	MovieID string  `validate:"required"`
	Rating  float64 `validate:"rating"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("rating", validRating)
	})
	return validate
}

// validRating acepta [MinRating, MaxRating]; NaN queda fuera.
func validRating(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= models.MinRating && v <= models.MaxRating
}

// ParseRatingPayload convierte el body JSON (ya decodificado con UseNumber) en un
// RatingInput. Los ids y el rating pueden venir como número o como string.
func ParseRatingPayload(body map[string]any) (RatingInput, error) {
	if len(body) == 0 {
		return RatingInput{}, invalid(MsgEmptyBody)
	}

	userID, okU := idValue(body["user_id"])
	movieID, okM := idValue(body["movie_id"])
	rawRating, okR := body["rating"]
	if !okU || !okM || !okR || rawRating == nil {
		return RatingInput{}, invalid(MsgMissingData)
	}

	rating, err := ratingValue(rawRating)
	if err != nil {
		return RatingInput{}, err
	}
	return RatingInput{UserID: userID, MovieID: movieID, Rating: rating}, nil
}

func idValue(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = x
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return "", false
	}
	s = models.NormalizeID(s)
	return s, s != ""
}

func ratingValue(v any) (float64, error) {
	var f float64
	var err error
	switch x := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(x.String(), 64)
	case float64:
		f = x
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, invalid(MsgRatingNotNum)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(MsgRatingNotNum)
	}
	return f, nil
}

type RatingService struct {
	ratings RatingStore
}

func NewRatingService(r RatingStore) *RatingService {
	return &RatingService{ratings: r}
}

// Submit valida y hace upsert del rating. Valores fuera de [1,5] no llegan al store.
func (s *RatingService) Submit(ctx context.Context, in RatingInput) error {
	if err := getValidator().Struct(in); err != nil {
		metrics.RatingsSubmitted.WithLabelValues("invalid").Inc()
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Rating" {
			return invalid(MsgRatingOutRange)
		}
		return invalid(MsgMissingData)
	}

	if err := s.ratings.UpsertRating(ctx, in.UserID, in.MovieID, in.Rating); err != nil {
		metrics.RatingsSubmitted.WithLabelValues("error").Inc()
		return fmt.Errorf("guardando rating: %w", err)
	}

	metrics.RatingsSubmitted.WithLabelValues("ok").Inc()
	logging.Ctx(ctx).Debug().
		Str("user_id", in.UserID).
		Str("movie_id", in.MovieID).
		Float64("rating", in.Rating).
		Msg("rating guardado")
	return nil
}

// ListByUser devuelve los ratings de un usuario, en el orden del store.
func (s *RatingService) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	all, err := s.ratings.ListRatings(ctx)
	if err != nil {
		return nil, err
	}
	id := models.NormalizeID(userID)
	out := []models.Rating{}
	for _, r := range all {
		if r.UserID == id {
			out = append(out, r)
		}
	}
	return out, nil
}
