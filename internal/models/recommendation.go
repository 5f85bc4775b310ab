package models

import "time"

const (
	AlgoContent       = "content-cosine"
	AlgoCollaborative = "user-knn"
)

// Recommendation es el historial que se guarda en Mongo por cada cálculo.
type Recommendation struct {
	ID               string         `bson:"_id,omitempty"    json:"id"`
	Subject          string         `bson:"subject"          json:"subject"` // user_id o movie_id consultado
	Algo             string         `bson:"algo"             json:"algo"`
	SimilarityMetric string         `bson:"similarityMetric" json:"similarityMetric"`
	Params           map[string]any `bson:"params"           json:"params"`
	Items            []MovieSummary `bson:"items"            json:"items"`
	CreatedAt        time.Time      `bson:"createdAt"        json:"createdAt"`
}

// MovieStat es una fila de /movies/top.
type MovieStat struct {
	MovieSummary
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
