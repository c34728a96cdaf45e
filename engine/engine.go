package engine

import (
	"gomokuzero/game"
	"gomokuzero/metrics"
)

type Engine interface {
	// Run plays a game until it ends and returns the winner, None for a draw
	Run() (winner game.Color, gameMetric metrics.GameMetric, err error)
}

// Observer is called with the state before each move is played.
type Observer func(state game.State, move int, probs []float64) error
