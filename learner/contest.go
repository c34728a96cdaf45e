package learner

import (
	"fmt"
	"gomokuzero/engine"
	"gomokuzero/game"
	"gomokuzero/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Contest plays games/2 games with Black starting, then games/2 with White
// starting. The candidate always holds Black and the incumbent White. Moves
// are the argmax of each search's greedy distribution.
func (l *Learner) Contest(candidate, incumbent agent.Searcher, games int) (ContestResult, error) {
	seats := map[game.Color]agent.Agent{
		game.Black: agent.NewEvaluationAgent(candidate),
		game.White: agent.NewEvaluationAgent(incumbent),
	}

	var result ContestResult
	half := games / 2
	for _, first := range []game.Color{game.Black, game.White} {
		for i := 0; i < half; i++ {
			winner, gameMetric, err := engine.NewLocalEngine(l.newGame(first), seats).Run()
			if err != nil {
				return result, fmt.Errorf("contest game %d: %w", result.Total()+1, err)
			}
			switch winner {
			case game.Black:
				result.CandidateWins++
			case game.White:
				result.IncumbentWins++
			default:
				result.Draws++
			}
			log.Debug().
				Str("first", first.String()).
				Str("winner", winner.String()).
				Int("moves", gameMetric.TotalMoves).
				Msg("contest game finished")
		}
	}
	return result, nil
}
