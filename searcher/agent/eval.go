package agent

import (
	"gomokuzero/game"
	"gomokuzero/utils"
)

type evaluationAgent struct {
	mcts Searcher
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts Searcher) Agent {
	return &evaluationAgent{mcts: mcts}
}

func (a *evaluationAgent) FindMove(state game.State) (int, []float64, error) {
	probs, err := a.mcts.GreedyProbs(state)
	if err != nil {
		return -1, nil, err
	}
	return utils.ArgMax(probs), probs, nil
}

func (a *evaluationAgent) Advance(move int) {
	a.mcts.UpdateWithMove(move)
}

func (a *evaluationAgent) Reset() {
	a.mcts.Reset()
}
