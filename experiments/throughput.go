package experiments

import (
	"fmt"
	"gomokuzero/config"
	"gomokuzero/engine"
	"gomokuzero/game"
	"gomokuzero/learner"
	"gomokuzero/metrics"
	"gomokuzero/nnet"
	"gomokuzero/searcher"
	"gomokuzero/searcher/agent"

	"github.com/rs/zerolog/log"
)

// ThroughputConfigs share a simulation budget and differ in pool size only.
func ThroughputConfigs(simulations int) []metrics.AgentConfig {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16} {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Goroutines: goroutines, Simulations: simulations})
	}
	return configs
}

// RunThroughputExperiment plays games per agent config, with the same config
// in both seats for the same playing strength and similar game length, and
// returns per-game and per-move search records. model guides every search.
func RunThroughputExperiment(conf config.Config, model nnet.Model, configs []metrics.AgentConfig, games int) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msg("starting throughput experiment...")
	for _, agentConfig := range configs {
		log.Info().Msgf("starting games for agent %+v...", agentConfig)

		pool := searcher.NewPool(agentConfig.Goroutines)
		searches := map[game.Color]*searcher.MCTS{
			game.Black: createMCTS(conf, pool, model, agentConfig),
			game.White: createMCTS(conf, pool, model, agentConfig),
		}
		seats := map[game.Color]agent.Agent{
			game.Black: agent.NewEvaluationAgent(searches[game.Black]),
			game.White: agent.NewEvaluationAgent(searches[game.White]),
		}

		first := game.Black
		for i := 0; i < games; i++ {
			count++
			step := 0
			record := func(state game.State, _ int, _ []float64) error {
				step++
				color := state.CurrentColor()
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:         count,
					Step:         step,
					Color:        int(color),
					SearchMetric: searches[color].LastMetric(),
				})
				return nil
			}

			e := engine.NewLocalEngine(game.NewGomoku(conf.N, conf.NInRow, first), seats).Observe(record)
			winner, gameMetric, err := e.Run()
			if err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("game %d of agent %d: %w", i+1, agentConfig.ID, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{ID: count, Agent: agentConfig.ID, GameMetric: gameMetric})
			log.Info().Msgf("completed game %d with winner: %s", i+1, winner)
			first = first.Opponent()
		}
		pool.Close()
	}
	log.Info().Msg("completed throughput experiment")
	return gameRecords, moveRecords, nil
}

func createMCTS(conf config.Config, pool *searcher.Pool, model nnet.Model, agentConfig metrics.AgentConfig) *searcher.MCTS {
	return searcher.NewMCTS(pool, learner.NewInferenceAdapter(model),
		searcher.WithCPuct(conf.CPuct),
		searcher.WithVirtualLoss(conf.CVirtualLoss),
		searcher.WithSimulations(agentConfig.Simulations),
		searcher.WithActionSize(conf.N*conf.N),
		searcher.WithMetrics(metrics.NewCollector()),
	)
}
