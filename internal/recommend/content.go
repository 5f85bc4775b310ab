package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"movierec/internal/models"
)

// Tokenize replica el analizador por defecto del vectorizador: minúsculas,
// tokens de 2+ caracteres de palabra (letras, números, '_'), sin stop words.
func Tokenize(text string) []string {
	var out []string
	var b strings.Builder
	n := 0
	flush := func() {
		if n >= 2 {
			tok := b.String()
			if _, stop := englishStopWords[tok]; !stop {
				out = append(out, tok)
			}
		}
		b.Reset()
		n = 0
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			b.WriteRune(r)
			n++
			continue
		}
		flush()
	}
	flush()
	return out
}

// SimilarityIndex es la representación term-frequency del catálogo.
// Cada fila corresponde a una película en el orden del catálogo.
type SimilarityIndex struct {
	ids     []string
	vectors []map[int]float64
	norms   []float64
	vocab   map[string]int
}

func NewSimilarityIndex(movies []models.Movie) *SimilarityIndex {
	ix := &SimilarityIndex{
		ids:     make([]string, len(movies)),
		vectors: make([]map[int]float64, len(movies)),
		norms:   make([]float64, len(movies)),
		vocab:   make(map[string]int),
	}
	for i, m := range movies {
		ix.ids[i] = m.MovieID
		vec := make(map[int]float64)
		for _, tok := range Tokenize(m.Document()) {
			id, ok := ix.vocab[tok]
			if !ok {
				id = len(ix.vocab)
				ix.vocab[tok] = id
			}
			vec[id]++
		}
		var sq float64
		for _, c := range vec {
			sq += c * c
		}
		ix.vectors[i] = vec
		ix.norms[i] = math.Sqrt(sq)
	}
	return ix
}

func (ix *SimilarityIndex) Len() int { return len(ix.ids) }

// VocabularySize es la cantidad de términos distintos del corpus.
func (ix *SimilarityIndex) VocabularySize() int { return len(ix.vocab) }

// Row devuelve la primera fila con ese movie_id.
func (ix *SimilarityIndex) Row(movieID string) (int, bool) {
	id := models.NormalizeID(movieID)
	for i, v := range ix.ids {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

// Cosine entre dos filas; 0 si alguna es un vector nulo.
func (ix *SimilarityIndex) Cosine(a, b int) float64 {
	if ix.norms[a] == 0 || ix.norms[b] == 0 {
		return 0
	}
	va, vb := ix.vectors[a], ix.vectors[b]
	if len(vb) < len(va) {
		va, vb = vb, va
	}
	var dot float64
	for t, c := range va {
		dot += c * vb[t]
	}
	return dot / (ix.norms[a] * ix.norms[b])
}

// Similarities es la fila `row` de la matriz de similitud.
func (ix *SimilarityIndex) Similarities(row int) []float64 {
	out := make([]float64, ix.Len())
	for j := range out {
		out[j] = ix.Cosine(row, j)
	}
	return out
}

// Pairwise arma la matriz completa (simétrica). Solo para inspección/tests:
// las recomendaciones usan Similarities sobre una sola fila.
func (ix *SimilarityIndex) Pairwise() [][]float64 {
	out := make([][]float64, ix.Len())
	for i := range out {
		out[i] = make([]float64, ix.Len())
	}
	for i := range out {
		for j := i; j < ix.Len(); j++ {
			s := ix.Cosine(i, j)
			out[i][j], out[j][i] = s, s
		}
	}
	return out
}

// MostSimilar devuelve hasta n filas ordenadas por similitud descendente con la
// película consultada, sin la película misma. Empates: orden del catálogo.
// Si el id no existe devuelve nil.
func (ix *SimilarityIndex) MostSimilar(movieID string, n int) []int {
	row, ok := ix.Row(movieID)
	if !ok || n <= 0 {
		return nil
	}
	sims := ix.Similarities(row)
	query := ix.ids[row]

	order := make([]int, 0, len(sims))
	for i := range sims {
		if ix.ids[i] == query {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool { return sims[order[a]] > sims[order[b]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// Similar es recommend_similar: reconstruye el índice desde cero y devuelve las
// películas más parecidas a movieID (vacío si no existe).
func Similar(movies []models.Movie, movieID string, n int) []models.Movie {
	return SimilarWithIndex(NewSimilarityIndex(movies), movies, movieID, n)
}

// SimilarWithIndex usa un índice ya construido sobre el mismo slice de películas.
func SimilarWithIndex(ix *SimilarityIndex, movies []models.Movie, movieID string, n int) []models.Movie {
	rows := ix.MostSimilar(movieID, n)
	out := make([]models.Movie, 0, len(rows))
	for _, r := range rows {
		out = append(out, movies[r])
	}
	return out
}
