package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	"movierec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []ScoredMovie) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.MovieID)
	}
	return out
}

func TestForUser_ExcludesWatchedMovies(t *testing.T) {
	ratings := []models.Rating{
		{UserID: "u1", MovieID: "m1", Rating: 5},
		{UserID: "u1", MovieID: "m2", Rating: 4},
		{UserID: "u2", MovieID: "m1", Rating: 5},
		{UserID: "u2", MovieID: "m2", Rating: 5},
		{UserID: "u2", MovieID: "m3", Rating: 1},
	}

	got, err := ForUser(ratings, "u1", DefaultNeighbors, DefaultResults)
	require.NoError(t, err)
	assert.Equal(t, []string{"m3"}, ids(got))
	assert.InDelta(t, 0.5, got[0].Score, 1e-9)
}

func TestForUser_UnknownUser(t *testing.T) {
	ratings := []models.Rating{{UserID: "u1", MovieID: "m1", Rating: 5}}

	_, err := ForUser(ratings, "u9", DefaultNeighbors, DefaultResults)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = ForUser(nil, "u1", DefaultNeighbors, DefaultResults)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForUser_NoCandidatesLeft(t *testing.T) {
	ratings := []models.Rating{
		{UserID: "u1", MovieID: "m1", Rating: 5},
		{UserID: "u2", MovieID: "m1", Rating: 3},
		{UserID: "u2", MovieID: "m2", Rating: 3},
	}
	_, err := ForUser(ratings, "u2", DefaultNeighbors, DefaultResults)
	assert.ErrorIs(t, err, ErrNoRecommendations)
}

func TestForUser_RanksByNeighborMean(t *testing.T) {
	ratings := []models.Rating{
		{UserID: "u1", MovieID: "m1", Rating: 5},
		{UserID: "u2", MovieID: "m1", Rating: 5},
		{UserID: "u2", MovieID: "m2", Rating: 5},
		{UserID: "u2", MovieID: "m3", Rating: 1},
		{UserID: "u3", MovieID: "m1", Rating: 4},
		{UserID: "u3", MovieID: "m2", Rating: 4},
		{UserID: "u3", MovieID: "m4", Rating: 2},
	}

	t.Run("all users as neighbors", func(t *testing.T) {
		got, err := ForUser(ratings, "u1", DefaultNeighbors, DefaultResults)
		require.NoError(t, err)
		// m2 = 9/3, m4 = 2/3, m3 = 1/3
		assert.Equal(t, []string{"m2", "m4", "m3"}, ids(got))
	})

	t.Run("only nearest neighbor", func(t *testing.T) {
		// cos(u1,u2) = 5/sqrt(51) > cos(u1,u3) = 2/3
		got, err := ForUser(ratings, "u1", 2, DefaultResults)
		require.NoError(t, err)
		assert.Equal(t, []string{"m2", "m3", "m4"}, ids(got))
	})

	t.Run("caps results", func(t *testing.T) {
		got, err := ForUser(ratings, "u1", DefaultNeighbors, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"m2"}, ids(got))
	})
}

func TestBuildMatrix_SortsIDsAndAveragesDuplicates(t *testing.T) {
	m := BuildMatrix([]models.Rating{
		{UserID: "10", MovieID: "b", Rating: 2},
		{UserID: "2", MovieID: "a", Rating: 4},
		{UserID: "2", MovieID: "a", Rating: 2},
		{UserID: "1", MovieID: "10", Rating: 1},
	})

	assert.Equal(t, []string{"1", "2", "10"}, m.Users)
	assert.Equal(t, []string{"10", "a", "b"}, m.Movies)
	row, ok := m.Row("2")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 3, 0}, m.Values[row])
}

func TestNeighbors_TargetFirst(t *testing.T) {
	var ratings []models.Rating
	for u := 0; u < 8; u++ {
		ratings = append(ratings, models.Rating{UserID: fmt.Sprint(u), MovieID: "m1", Rating: 3})
	}
	m := BuildMatrix(ratings)
	row, _ := m.Row("6")

	nb := m.Neighbors(row, DefaultNeighbors)
	require.Len(t, nb, DefaultNeighbors)
	assert.Equal(t, row, nb[0])
	// todos a distancia 0: desempate por orden de fila
	assert.Equal(t, []int{row, 0, 1, 2, 3}, nb)
}

func TestDistances_ParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var ratings []models.Rating
	for u := 0; u < 1200; u++ {
		for k := 0; k < 5; k++ {
			ratings = append(ratings, models.Rating{
				UserID:  fmt.Sprint(u),
				MovieID: fmt.Sprint(rng.Intn(40)),
				Rating:  float64(1 + rng.Intn(5)),
			})
		}
	}
	m := BuildMatrix(ratings)

	got := m.distances(17)
	require.Len(t, got, len(m.Users))
	for i := range got {
		assert.InDelta(t, m.CosineDistance(17, i), got[i], 1e-12)
	}
	assert.InDelta(t, 0, got[17], 1e-9)
}
