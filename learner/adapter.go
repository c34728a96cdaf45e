package learner

import (
	"gomokuzero/game"
	"gomokuzero/nnet"
	"gomokuzero/searcher"
	"gomokuzero/utils"
)

type inferenceAdapter struct {
	model nnet.Model
}

// NewInferenceAdapter lets a search query model with single positions. Model
// errors are returned unchanged.
func NewInferenceAdapter(model nnet.Model) searcher.Evaluator {
	return inferenceAdapter{model: model}
}

func (a inferenceAdapter) Evaluate(state game.State) ([]float64, float64, error) {
	input := nnet.Input{
		Board:    state.Board(),
		LastMove: state.LastMove(),
		Color:    state.CurrentColor(),
	}
	policies, values, err := a.model.Infer([]nnet.Input{input})
	if err != nil {
		return nil, 0, err
	}
	if len(policies) != 1 || len(values) != 1 {
		return nil, 0, utils.Violation("model returned %d policies and %d values for one input", len(policies), len(values))
	}
	return policies[0], values[0], nil
}
