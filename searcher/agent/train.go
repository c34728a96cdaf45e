package agent

import (
	"fmt"
	"gomokuzero/game"

	"golang.org/x/exp/rand"
)

// Exploration controls how much self-play deviates from the search's best move.
type Exploration struct {
	Temperature    float64
	ExploreNum     int // moves played at Temperature, later moves are greedy
	DirichletAlpha float64
}

// TemperatureAt returns the temperature for the given 1-based move number.
func (e Exploration) TemperatureAt(step int) float64 {
	if step <= e.ExploreNum {
		return e.Temperature
	}
	return 0
}

type trainingAgent struct {
	mcts        Searcher
	exploration Exploration
	rng         *rand.Rand
	step        int
}

// NewTrainingAgent returns a new agent for self-play during training.
func NewTrainingAgent(mcts Searcher, exploration Exploration, rng *rand.Rand) Agent {
	return &trainingAgent{mcts: mcts, exploration: exploration, rng: rng}
}

func (a *trainingAgent) FindMove(state game.State) (int, []float64, error) {
	a.step++
	probs, err := a.mcts.ActionProbs(state, a.exploration.TemperatureAt(a.step))
	if err != nil {
		return -1, nil, fmt.Errorf("failed to search move %d: %w", a.step, err)
	}

	noisy, err := AddDirichletNoise(probs, a.exploration.DirichletAlpha, a.rng)
	if err != nil {
		return -1, nil, err
	}
	return Sample(noisy, a.rng), probs, nil
}

func (a *trainingAgent) Advance(move int) {
	a.mcts.UpdateWithMove(move)
}

func (a *trainingAgent) Reset() {
	a.step = 0
	a.mcts.Reset()
}
