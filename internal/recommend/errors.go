// Package recommend contiene los dos motores de recomendación como funciones
// puras sobre una foto del catálogo / de los ratings. No hace I/O.
package recommend

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNoRecommendations = errors.New("no recommendations found")
)

const (
	// DefaultResults es el largo máximo de ambos tipos de recomendación.
	DefaultResults = 4
	// DefaultNeighbors incluye al propio usuario.
	DefaultNeighbors = 5
)
