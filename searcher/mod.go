package searcher

import "gomokuzero/game"

// Hyperparameters for MCTS
const (
	DefaultCPuct       = 5.0 // Exploration constant
	DefaultVirtualLoss = 3.0 // Value subtracted per in-flight simulation
	DefaultSimulations = 400 // Simulations per search call
)

// Temperatures below this select the most visited move
const greedyTemperature = 1e-3

// Evaluator scores a non-terminal state: a prior over all board cells and a
// value in [-1, 1] from the perspective of the player to move. It is called
// from search workers concurrently.
type Evaluator interface {
	Evaluate(state game.State) (policy []float64, value float64, err error)
}

type EvaluatorFunc func(state game.State) ([]float64, float64, error)

func (f EvaluatorFunc) Evaluate(state game.State) ([]float64, float64, error) {
	return f(state)
}

// terminalValue is the outcome of an ended game from the perspective of the
// player to move in it.
func terminalValue(state game.State, winner game.Color) float64 {
	switch winner {
	case game.None:
		return 0
	case state.CurrentColor():
		return WIN
	default:
		return LOSS
	}
}

const WIN = 1.0   // Reward for winning outcome
const LOSS = -WIN // Reward for loss outcome (negate from opponent perspective)
