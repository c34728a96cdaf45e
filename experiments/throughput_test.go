package experiments

import (
	"gomokuzero/config"
	"gomokuzero/metrics"
	"gomokuzero/nnet"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunThroughputExperiment(t *testing.T) {
	conf := config.Default()
	conf.N = 3
	conf.NInRow = 3
	model := nnet.NewLinear(nnet.LinearConfig{Size: 3, LearningRate: 0.01, Epochs: 1}, nil)
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Simulations: 20},
		{ID: 2, Goroutines: 4, Simulations: 20},
	}

	games, moves, err := RunThroughputExperiment(conf, model, configs, 2)

	require.NoError(t, err)
	require.Len(t, games, 4)
	total := 0
	for _, g := range games {
		total += g.TotalMoves
	}
	require.Len(t, moves, total, "One record per move")
	for _, m := range moves {
		require.Equal(t, 20, m.Simulations)
	}
	require.Equal(t, 1, games[0].StartingColor)
	require.Equal(t, -1, games[1].StartingColor, "Starting color alternates")
}

func TestThroughputConfigs(t *testing.T) {
	configs := ThroughputConfigs(50)
	require.Len(t, configs, 5)
	require.Equal(t, 1, configs[0].Goroutines)
	require.Equal(t, 50, configs[4].Simulations)
}
