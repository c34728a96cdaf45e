package engine

import (
	"fmt"
	"gomokuzero/game"
	"gomokuzero/metrics"
	"gomokuzero/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	State    game.State
	Agents   map[game.Color]agent.Agent
	observer Observer
}

// NewLocalEngine seats agents by color. The same agent may take both seats,
// as in self-play.
func NewLocalEngine(state game.State, agents map[game.Color]agent.Agent) *LocalEngine {
	for _, color := range []game.Color{game.Black, game.White} {
		if agents[color] == nil {
			panic(fmt.Sprintf("no agent seated for %s", color))
		}
	}
	return &LocalEngine{State: state, Agents: agents}
}

func (e *LocalEngine) Observe(observer Observer) *LocalEngine {
	e.observer = observer
	return e
}

// Run resets the agents, then plays until the game ends. Every distinct agent
// is advanced once per move so its tree follows the game.
func (e *LocalEngine) Run() (game.Color, metrics.GameMetric, error) {
	players := e.distinctAgents()
	for _, player := range players {
		player.Reset()
	}

	gameMetric := metrics.GameMetric{
		StartingColor: int(e.State.CurrentColor()),
		StartTime:     time.Now(),
	}
	log.Debug().Msgf("%s is starting", e.State.CurrentColor())

	ended, winner := e.State.Status()
	for !ended {
		color := e.State.CurrentColor()
		move, probs, err := e.Agents[color].FindMove(e.State)
		if err != nil {
			return game.None, gameMetric, fmt.Errorf("%s failed to find move %d: %w", color, gameMetric.TotalMoves+1, err)
		}
		if e.observer != nil {
			if err := e.observer(e.State, move, probs); err != nil {
				return game.None, gameMetric, err
			}
		}
		if err := e.State.Play(move); err != nil {
			return game.None, gameMetric, fmt.Errorf("%s played move %d: %w", color, move, err)
		}
		for _, player := range players {
			player.Advance(move)
		}
		gameMetric.TotalMoves++
		ended, winner = e.State.Status()
	}

	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, nil
}

func (e *LocalEngine) distinctAgents() []agent.Agent {
	black, white := e.Agents[game.Black], e.Agents[game.White]
	if black == white {
		return []agent.Agent{black}
	}
	return []agent.Agent{black, white}
}
