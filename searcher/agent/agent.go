package agent

import "gomokuzero/game"

// Searcher is the part of a tree search an agent drives. *searcher.MCTS
// implements it.
type Searcher interface {
	ActionProbs(state game.State, temperature float64) ([]float64, error)
	GreedyProbs(state game.State) ([]float64, error)
	UpdateWithMove(move int)
	Reset()
}

type Agent interface {
	// FindMove returns the chosen move and the search distribution (before
	// any exploration noise) it was chosen from
	FindMove(state game.State) (move int, probs []float64, err error)
	// Advance keeps the agent's search tree in step with a played move
	Advance(move int)
	// Reset prepares the agent for a new game
	Reset()
}
