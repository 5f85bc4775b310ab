package service

import (
	"context"
	"testing"

	"movierec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieService_Get(t *testing.T) {
	svc := NewMovieService(&memCatalog{movies: sampleMovies()}, &memRatings{})

	got, err := svc.Get(context.Background(), "m3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Unknown", got.Year)

	got, err = svc.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMovieService_Top(t *testing.T) {
	ratings := &memRatings{ratings: []models.Rating{
		{UserID: "1", MovieID: "m1", Rating: 3},
		{UserID: "2", MovieID: "m1", Rating: 3},
		{UserID: "3", MovieID: "m1", Rating: 3},
		{UserID: "1", MovieID: "m2", Rating: 5},
		{UserID: "1", MovieID: "m9", Rating: 5}, // fuera del catálogo
	}}
	svc := NewMovieService(&memCatalog{movies: sampleMovies()}, ratings)
	ctx := context.Background()

	popular, err := svc.Top(ctx, TopMetricPopular, 0)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "m1", popular[0].MovieID)
	assert.Equal(t, 3, popular[0].Count)
	assert.InDelta(t, 3.0, popular[0].Average, 1e-9)

	best, err := svc.Top(ctx, TopMetricRating, 1)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, "m2", best[0].MovieID)
}
