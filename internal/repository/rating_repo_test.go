package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"movierec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRatingRepository_ListMissingFileIsEmpty(t *testing.T) {
	repo := NewCSVRatingRepository(filepath.Join(t.TempDir(), "ratings.csv"))

	got, err := repo.ListRatings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCSVRatingRepository_UpsertKeepsOneRowPerPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	repo := NewCSVRatingRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.UpsertRating(ctx, "1", "10", 3))
	require.NoError(t, repo.UpsertRating(ctx, "1", "11", 4))
	require.NoError(t, repo.UpsertRating(ctx, "01", "10.0", 5)) // mismo par normalizado

	got, err := repo.ListRatings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Rating{
		{UserID: "1", MovieID: "10", Rating: 5},
		{UserID: "1", MovieID: "11", Rating: 4},
	}, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "user_id,movie_id,rating\n1,10,5\n1,11,4\n", string(raw))
}

func TestCSVRatingRepository_PreservesHeaderOrderAndExtraColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ratings.csv", "movie_id,rating,user_id,source\n7,2.0,3,import\n")
	repo := NewCSVRatingRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.UpsertRating(ctx, "3", "7", 4.5))
	require.NoError(t, repo.UpsertRating(ctx, "4", "7", 1))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "movie_id,rating,user_id,source\n7,4.5,3,import\n7,1,4,\n", string(raw))
}

func TestCSVRatingRepository_ConcurrentUpsertsAreSerialized(t *testing.T) {
	repo := NewCSVRatingRepository(filepath.Join(t.TempDir(), "ratings.csv"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.UpsertRating(ctx, fmt.Sprint(i%5), fmt.Sprint(i), 3))
		}(i)
	}
	wg.Wait()

	got, err := repo.ListRatings(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 25)
}

func TestCSVRatingRepository_VersionChangesOnWrite(t *testing.T) {
	repo := NewCSVRatingRepository(filepath.Join(t.TempDir(), "ratings.csv"))
	ctx := context.Background()

	v0, err := repo.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertRating(ctx, "1", "1", 4))
	v1, err := repo.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertRating(ctx, "1", "1", 5))
	v2, err := repo.Version(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, v0, v1)
	assert.NotEqual(t, v1, v2)
}

func TestCSVRatingRepository_BadRatingIsStorageError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ratings.csv", "user_id,movie_id,rating\n1,2,great\n")

	_, err := NewCSVRatingRepository(path).ListRatings(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestCSVRatingRepository_SkipsEmptyAndNaNRatings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ratings.csv", "user_id,movie_id,rating\n1,2,\n1,3,nan\n1,4,4.0\n")

	got, err := NewCSVRatingRepository(path).ListRatings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Rating{{UserID: "1", MovieID: "4", Rating: 4}}, got)
}
