package models

// Placeholders usados al listar el catálogo cuando falta un campo.
const (
	UnknownPlaceholder  = "Unknown"
	UntitledPlaceholder = "Untitled"
)

// Movie es una fila completa del catálogo (project.csv).
type Movie struct {
	MovieID   string `json:"movie_id" bson:"movie_id"`
	MovieName string `json:"movie_name" bson:"movie_name"`
	Year      string `json:"year" bson:"year"`
	Genre     string `json:"genre" bson:"genre"`
	Language  string `json:"language" bson:"language"`
	Overview  string `json:"overview" bson:"overview"`
	Cast      string `json:"cast" bson:"cast"`
}

// MovieSummary es la proyección que devuelve la API en listados y recomendaciones.
type MovieSummary struct {
	MovieID   string `json:"movie_id" bson:"movie_id"`
	MovieName string `json:"movie_name" bson:"movie_name"`
	Year      string `json:"year" bson:"year"`
	Genre     string `json:"genre" bson:"genre"`
	Language  string `json:"language" bson:"language"`
}

// Summary proyecta la película rellenando los campos vacíos con placeholders.
func (m Movie) Summary() MovieSummary {
	return MovieSummary{
		MovieID:   orDefault(m.MovieID, UnknownPlaceholder),
		MovieName: orDefault(m.MovieName, UntitledPlaceholder),
		Year:      orDefault(m.Year, UnknownPlaceholder),
		Genre:     orDefault(m.Genre, UnknownPlaceholder),
		Language:  orDefault(m.Language, UnknownPlaceholder),
	}
}

// Document arma el texto combinado (overview + cast + genre) usado por el motor de contenido.
func (m Movie) Document() string {
	return m.Overview + " " + m.Cast + " " + m.Genre
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
