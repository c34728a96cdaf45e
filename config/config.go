package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	// Game
	N      int `yaml:"n"`        // board side
	NInRow int `yaml:"n_in_row"` // stones in a row to win

	// Training loop
	NumIters        int     `yaml:"num_iters"`
	NumEps          int     `yaml:"num_eps"`     // self-play episodes per iteration
	CheckFreq       int     `yaml:"check_freq"`  // iterations between contests
	ContestNum      int     `yaml:"contest_num"` // games per contest
	UpdateThreshold float64 `yaml:"update_threshold"`
	BufferSize      int     `yaml:"examples_buffer_max_len"`
	BatchSize       int     `yaml:"batch_size"`

	// Exploration
	DirichletAlpha float64 `yaml:"dirichlet_alpha"`
	Temp           float64 `yaml:"temp"`
	ExploreNum     int     `yaml:"explore_num"`

	// Model
	LearningRate float64 `yaml:"lr"`
	L2           float64 `yaml:"l2"`
	Epochs       int     `yaml:"epochs"`

	// Search
	NumMCTSSims    int     `yaml:"num_mcts_sims"`
	CPuct          float64 `yaml:"c_puct"`
	CVirtualLoss   float64 `yaml:"c_virtual_loss"`
	ThreadPoolSize int     `yaml:"thread_pool_size"`

	// Run
	Seed          uint64 `yaml:"seed"`
	CheckpointDir string `yaml:"checkpoint_dir"` // empty keeps checkpoints in memory
	RecordsDir    string `yaml:"records_dir"`    // empty disables records
	LogLevel      string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		N:      10,
		NInRow: 5,

		NumIters:        10000,
		NumEps:          10,
		CheckFreq:       20,
		ContestNum:      10,
		UpdateThreshold: 0.55,
		BufferSize:      100000,
		BatchSize:       512,

		DirichletAlpha: 0.3,
		Temp:           1,
		ExploreNum:     2,

		LearningRate: 0.002,
		L2:           1e-4,
		Epochs:       5,

		NumMCTSSims:    400,
		CPuct:          5,
		CVirtualLoss:   3,
		ThreadPoolSize: 4,

		Seed:          1,
		CheckpointDir: "checkpoints",
		RecordsDir:    "records",
		LogLevel:      "info",
	}
}

// Load reads a YAML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	conf := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return conf, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return conf, conf.Validate()
}

func (c Config) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value int
	}{
		{"n", c.N},
		{"n_in_row", c.NInRow},
		{"num_iters", c.NumIters},
		{"num_eps", c.NumEps},
		{"check_freq", c.CheckFreq},
		{"examples_buffer_max_len", c.BufferSize},
		{"batch_size", c.BatchSize},
		{"epochs", c.Epochs},
		{"num_mcts_sims", c.NumMCTSSims},
		{"thread_pool_size", c.ThreadPoolSize},
	}
	for _, field := range positive {
		if field.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", field.name, field.value))
		}
	}
	if c.NInRow > c.N {
		errs = append(errs, fmt.Errorf("n_in_row %d exceeds board size %d", c.NInRow, c.N))
	}
	if c.ContestNum < 2 {
		errs = append(errs, fmt.Errorf("contest_num must be at least 2, got %d", c.ContestNum))
	}
	if c.BatchSize > c.BufferSize {
		errs = append(errs, fmt.Errorf("batch_size %d exceeds buffer size %d", c.BatchSize, c.BufferSize))
	}
	if c.UpdateThreshold < 0 || c.UpdateThreshold > 1 {
		errs = append(errs, fmt.Errorf("update_threshold must be in [0, 1], got %v", c.UpdateThreshold))
	}
	if c.DirichletAlpha <= 0 {
		errs = append(errs, fmt.Errorf("dirichlet_alpha must be positive, got %v", c.DirichletAlpha))
	}
	if c.Temp < 0 || c.ExploreNum < 0 {
		errs = append(errs, fmt.Errorf("temp and explore_num must not be negative"))
	}
	if c.LearningRate <= 0 || c.L2 < 0 {
		errs = append(errs, fmt.Errorf("lr must be positive and l2 not negative"))
	}
	if c.CPuct <= 0 || c.CVirtualLoss < 0 {
		errs = append(errs, fmt.Errorf("c_puct must be positive and c_virtual_loss not negative"))
	}
	return errors.Join(errs...)
}
