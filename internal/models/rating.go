package models

// Rating es una fila de ratings.csv: un (user_id, movie_id) único con valor en [1,5].
type Rating struct {
	UserID  string  `json:"user_id" bson:"user_id"`
	MovieID string  `json:"movie_id" bson:"movie_id"`
	Rating  float64 `json:"rating" bson:"rating"`
}

const (
	MinRating = 1.0
	MaxRating = 5.0
)
