package learner

import (
	"fmt"
	"gomokuzero/engine"
	"gomokuzero/game"
	"gomokuzero/nnet"
	"gomokuzero/searcher/agent"
	"gomokuzero/symmetry"

	"github.com/rs/zerolog/log"
)

// SelfPlay plays one episode of the candidate against itself and returns
// every visited position in all its symmetries. Values are the final outcome
// seen from the color that was to move.
func (l *Learner) SelfPlay(first game.Color) ([]nnet.Example, error) {
	player := agent.NewTrainingAgent(l.newSearch(l.candidate), l.exploration, l.rng)
	seats := map[game.Color]agent.Agent{game.Black: player, game.White: player}

	var examples []nnet.Example
	record := func(state game.State, _ int, probs []float64) error {
		pairs, err := symmetry.Augment(state.Board(), probs)
		if err != nil {
			return err
		}
		for _, pair := range pairs {
			examples = append(examples, nnet.Example{
				Input: nnet.Input{
					Board:    pair.Board,
					LastMove: state.LastMove(),
					Color:    state.CurrentColor(),
				},
				Policy: pair.Policy,
			})
		}
		return nil
	}

	winner, gameMetric, err := engine.NewLocalEngine(l.newGame(first), seats).Observe(record).Run()
	if err != nil {
		return nil, fmt.Errorf("self-play starting with %s: %w", first, err)
	}
	for i := range examples {
		examples[i].Value = float64(examples[i].Color) * float64(winner)
	}

	log.Debug().
		Str("first", first.String()).
		Str("winner", winner.String()).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("self-play episode finished")
	return examples, nil
}
