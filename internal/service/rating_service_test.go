package service

import (
	"context"
	"math"
	"testing"

	"movierec/internal/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatingPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		want    RatingInput
		wantMsg string
	}{
		{
			name: "numbers",
			body: map[string]any{"user_id": json.Number("1"), "movie_id": json.Number("42"), "rating": json.Number("4.5")},
			want: RatingInput{UserID: "1", MovieID: "42", Rating: 4.5},
		},
		{
			name: "strings",
			body: map[string]any{"user_id": "01", "movie_id": "42.0", "rating": " 3 "},
			want: RatingInput{UserID: "1", MovieID: "42", Rating: 3},
		},
		{
			name: "float64",
			body: map[string]any{"user_id": 7.0, "movie_id": "abc", "rating": 5.0},
			want: RatingInput{UserID: "7", MovieID: "abc", Rating: 5},
		},
		{name: "empty", body: map[string]any{}, wantMsg: MsgEmptyBody},
		{name: "nil", body: nil, wantMsg: MsgEmptyBody},
		{name: "missing rating", body: map[string]any{"user_id": "1", "movie_id": "2"}, wantMsg: MsgMissingData},
		{name: "null rating", body: map[string]any{"user_id": "1", "movie_id": "2", "rating": nil}, wantMsg: MsgMissingData},
		{name: "blank user", body: map[string]any{"user_id": "  ", "movie_id": "2", "rating": "3"}, wantMsg: MsgMissingData},
		{name: "bool id", body: map[string]any{"user_id": true, "movie_id": "2", "rating": "3"}, wantMsg: MsgMissingData},
		{name: "text rating", body: map[string]any{"user_id": "1", "movie_id": "2", "rating": "abc"}, wantMsg: MsgRatingNotNum},
		{name: "nan rating", body: map[string]any{"user_id": "1", "movie_id": "2", "rating": "nan"}, wantMsg: MsgRatingNotNum},
		{name: "inf rating", body: map[string]any{"user_id": "1", "movie_id": "2", "rating": "Inf"}, wantMsg: MsgRatingNotNum},
		{name: "list rating", body: map[string]any{"user_id": "1", "movie_id": "2", "rating": []any{4}}, wantMsg: MsgRatingNotNum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRatingPayload(tt.body)
			if tt.wantMsg != "" {
				require.ErrorIs(t, err, ErrInvalidInput)
				assert.Equal(t, tt.wantMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatingService_Submit(t *testing.T) {
	store := &memRatings{}
	svc := NewRatingService(store)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, RatingInput{UserID: "1", MovieID: "2", Rating: 1}))
	require.NoError(t, svc.Submit(ctx, RatingInput{UserID: "1", MovieID: "2", Rating: 5}))

	got, err := svc.ListByUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []models.Rating{{UserID: "1", MovieID: "2", Rating: 5}}, got)
}

func TestRatingService_SubmitOutOfRange(t *testing.T) {
	store := &memRatings{}
	svc := NewRatingService(store)

	for _, v := range []float64{0, 0.99, 5.01, 7, -3} {
		err := svc.Submit(context.Background(), RatingInput{UserID: "1", MovieID: "2", Rating: v})
		require.ErrorIs(t, err, ErrInvalidInput, "rating %v", v)
		assert.Equal(t, MsgRatingOutRange, err.Error())
	}
	assert.Zero(t, store.writes)
}

func TestRatingService_SubmitAcceptsBounds(t *testing.T) {
	store := &memRatings{}
	svc := NewRatingService(store)

	for _, v := range []float64{models.MinRating, 2.5, models.MaxRating} {
		require.NoError(t, svc.Submit(context.Background(), RatingInput{UserID: "1", MovieID: "2", Rating: v}), "rating %v", v)
	}
	assert.Equal(t, 3, store.writes)

	err := svc.Submit(context.Background(), RatingInput{UserID: "1", MovieID: "2", Rating: math.NaN()})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgRatingOutRange, err.Error())
}

func TestRatingService_SubmitStoreFailure(t *testing.T) {
	svc := NewRatingService(&memRatings{err: errBoom})

	err := svc.Submit(context.Background(), RatingInput{UserID: "1", MovieID: "2", Rating: 3})
	require.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestRatingService_ListByUserUnknownIsEmpty(t *testing.T) {
	svc := NewRatingService(&memRatings{ratings: []models.Rating{{UserID: "2", MovieID: "1", Rating: 4}}})

	got, err := svc.ListByUser(context.Background(), "1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
