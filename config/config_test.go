package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
n: 3
n_in_row: 3
batch_size: 16
examples_buffer_max_len: 64
update_threshold: 0.6
checkpoint_dir: ""
`)

		conf, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, conf.N)
		require.Equal(t, 16, conf.BatchSize)
		require.Equal(t, 0.6, conf.UpdateThreshold)
		require.Equal(t, "", conf.CheckpointDir)
		require.Equal(t, Default().NumMCTSSims, conf.NumMCTSSims, "Unset keys keep their defaults")
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		conf, err := Load(writeConfig(t, ""))

		require.NoError(t, err)
		require.Equal(t, Default(), conf)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := Load(writeConfig(t, "board_size: 3\n"))

		require.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "n: 3\nn_in_row: 5\n"))

		require.ErrorContains(t, err, "n_in_row 5 exceeds board size 3")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero board":          func(c *Config) { c.N = 0 },
		"single contest game": func(c *Config) { c.ContestNum = 1 },
		"batch above buffer":  func(c *Config) { c.BatchSize = c.BufferSize + 1 },
		"threshold above one": func(c *Config) { c.UpdateThreshold = 1.5 },
		"zero alpha":          func(c *Config) { c.DirichletAlpha = 0 },
		"negative temp":       func(c *Config) { c.Temp = -1 },
		"zero learning rate":  func(c *Config) { c.LearningRate = 0 },
		"zero c_puct":         func(c *Config) { c.CPuct = 0 },
		"no workers":          func(c *Config) { c.ThreadPoolSize = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			conf := Default()
			mutate(&conf)

			require.Error(t, conf.Validate())
		})
	}
}
