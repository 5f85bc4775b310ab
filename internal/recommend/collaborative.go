package recommend

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"movierec/internal/models"
)

// minRowsPerWorker evita lanzar goroutines para matrices chicas.
const minRowsPerWorker = 256

// Matrix es la matriz usuario x película (0 = sin rating).
// Filas y columnas ordenadas por id (numérico si corresponde).
type Matrix struct {
	Users  []string
	Movies []string
	Values [][]float64

	userRow map[string]int
	norms   []float64
}

// BuildMatrix pivotea los ratings. Pares repetidos se promedian.
func BuildMatrix(ratings []models.Rating) *Matrix {
	type key struct{ u, m string }
	sums := make(map[key]float64)
	counts := make(map[key]int)
	users := make(map[string]struct{})
	movies := make(map[string]struct{})

	for _, r := range ratings {
		if math.IsNaN(r.Rating) {
			continue
		}
		k := key{r.UserID, r.MovieID}
		sums[k] += r.Rating
		counts[k]++
		users[r.UserID] = struct{}{}
		movies[r.MovieID] = struct{}{}
	}

	m := &Matrix{
		Users:   sortedIDs(users),
		Movies:  sortedIDs(movies),
		userRow: make(map[string]int, len(users)),
	}
	col := make(map[string]int, len(m.Movies))
	for j, id := range m.Movies {
		col[id] = j
	}
	m.Values = make([][]float64, len(m.Users))
	m.norms = make([]float64, len(m.Users))
	for i, id := range m.Users {
		m.userRow[id] = i
		m.Values[i] = make([]float64, len(m.Movies))
	}
	for k, s := range sums {
		m.Values[m.userRow[k.u]][col[k.m]] = s / float64(counts[k])
	}
	for i, row := range m.Values {
		var sq float64
		for _, v := range row {
			sq += v * v
		}
		m.norms[i] = math.Sqrt(sq)
	}
	return m
}

func sortedIDs(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return models.CompareIDs(out[i], out[j]) < 0 })
	return out
}

func (m *Matrix) Row(userID string) (int, bool) {
	i, ok := m.userRow[models.NormalizeID(userID)]
	return i, ok
}

// CosineDistance = 1 - cos(a, b); 1 si alguna fila es nula.
func (m *Matrix) CosineDistance(a, b int) float64 {
	if m.norms[a] == 0 || m.norms[b] == 0 {
		return 1
	}
	var dot float64
	ra, rb := m.Values[a], m.Values[b]
	for j := range ra {
		dot += ra[j] * rb[j]
	}
	return 1 - dot/(m.norms[a]*m.norms[b])
}

// distances calcula la distancia de `row` a todas las filas repartiendo el
// trabajo en shards; cada goroutine escribe su propio rango.
func (m *Matrix) distances(row int) []float64 {
	n := len(m.Users)
	out := make([]float64, n)

	workers := runtime.GOMAXPROCS(0)
	if most := (n + minRowsPerWorker - 1) / minRowsPerWorker; workers > most {
		workers = most
	}
	if workers <= 1 {
		for i := range out {
			out[i] = m.CosineDistance(row, i)
		}
		return out
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = m.CosineDistance(row, i)
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

// Neighbors devuelve las k filas más cercanas a `row`. La propia fila va
// siempre primero; el resto por distancia ascendente (empates: orden de fila).
// Con menos de k usuarios se usan todos.
func (m *Matrix) Neighbors(row, k int) []int {
	if k <= 0 {
		return nil
	}
	dist := m.distances(row)
	others := make([]int, 0, len(dist))
	for i := range dist {
		if i != row {
			others = append(others, i)
		}
	}
	sort.SliceStable(others, func(a, b int) bool { return dist[others[a]] < dist[others[b]] })
	if len(others) > k-1 {
		others = others[:k-1]
	}
	return append([]int{row}, others...)
}

// ScoredMovie es un candidato con su puntaje (promedio de los vecinos).
type ScoredMovie struct {
	MovieID string  `json:"movie_id"`
	Score   float64 `json:"score"`
}

// ForUser es recommend_for_user sobre una foto de los ratings: promedia las
// columnas de los k vecinos (incluido el usuario), descarta lo ya visto y
// devuelve los n mejores.
func ForUser(ratings []models.Rating, userID string, k, n int) ([]ScoredMovie, error) {
	return BuildMatrix(ratings).Recommend(userID, k, n)
}

func (m *Matrix) Recommend(userID string, k, n int) ([]ScoredMovie, error) {
	row, ok := m.Row(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	neighbors := m.Neighbors(row, k)
	target := m.Values[row]

	scores := make([]float64, len(m.Movies))
	for _, nb := range neighbors {
		for j, v := range m.Values[nb] {
			scores[j] += v
		}
	}
	candidates := make([]int, 0, len(m.Movies))
	for j := range scores {
		scores[j] /= float64(len(neighbors))
		if target[j] > 0 {
			continue // ya visto
		}
		candidates = append(candidates, j)
	}
	if len(candidates) == 0 {
		return nil, ErrNoRecommendations
	}

	sort.SliceStable(candidates, func(a, b int) bool { return scores[candidates[a]] > scores[candidates[b]] })
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]ScoredMovie, 0, len(candidates))
	for _, j := range candidates {
		out = append(out, ScoredMovie{MovieID: m.Movies[j], Score: scores[j]})
	}
	return out, nil
}
