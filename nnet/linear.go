package nnet

import (
	"encoding/json"
	"fmt"
	"gomokuzero/game"
	"gomokuzero/utils"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// planes per cell: own stones, opponent stones, last move
const planes = 3

type LinearConfig struct {
	Size         int // board side
	LearningRate float64
	L2           float64
	Epochs       int
}

// Linear is a softmax policy and tanh value over board features, trained by
// plain SGD. It is small enough to train on a CPU between self-play games.
type Linear struct {
	sync.RWMutex
	conf    LinearConfig
	weights *mat.Dense // actions x features
	value   []float64  // features
	store   Store
}

type linearCheckpoint struct {
	Size    int       `json:"size"`
	Weights []byte    `json:"weights"`
	Value   []float64 `json:"value"`
}

// NewLinear returns a zero-initialized model. store may be nil when the model
// is never checkpointed.
func NewLinear(conf LinearConfig, store Store) *Linear {
	if conf.Size <= 0 {
		panic("board size must be positive")
	}
	actions := conf.Size * conf.Size
	features := planes*actions + 1
	return &Linear{
		conf:    conf,
		weights: mat.NewDense(actions, features, nil),
		value:   make([]float64, features),
		store:   store,
	}
}

func (l *Linear) encode(in Input) ([]float64, error) {
	n := l.conf.Size
	if len(in.Board) != n {
		return nil, utils.Violation("board has %d rows, want %d", len(in.Board), n)
	}
	x := make([]float64, planes*n*n+1)
	for r, row := range in.Board {
		if len(row) != n {
			return nil, utils.Violation("board row %d has %d cells, want %d", r, len(row), n)
		}
		for c, cell := range row {
			switch game.Color(cell) {
			case in.Color:
				x[r*n+c] = 1
			case in.Color.Opponent():
				x[n*n+r*n+c] = 1
			}
		}
	}
	if in.LastMove >= 0 && in.LastMove < n*n {
		x[2*n*n+in.LastMove] = 1
	}
	x[len(x)-1] = 1 // bias
	return x, nil
}

// forward must be called with at least a read lock held.
func (l *Linear) forward(x []float64) ([]float64, float64) {
	rows, _ := l.weights.Dims()
	logits := mat.NewVecDense(rows, nil)
	logits.MulVec(l.weights, mat.NewVecDense(len(x), x))
	policy := logits.RawVector().Data
	lse := floats.LogSumExp(policy)
	for i := range policy {
		policy[i] = math.Exp(policy[i] - lse)
	}
	return policy, math.Tanh(floats.Dot(l.value, x))
}

func (l *Linear) Infer(batch []Input) ([][]float64, []float64, error) {
	l.RLock()
	defer l.RUnlock()

	policies := make([][]float64, len(batch))
	values := make([]float64, len(batch))
	for i, in := range batch {
		x, err := l.encode(in)
		if err != nil {
			return nil, nil, err
		}
		policies[i], values[i] = l.forward(x)
	}
	return policies, values, nil
}

// Train runs Epochs passes of SGD over the batch, minimizing policy cross
// entropy plus squared value error with L2 weight decay.
func (l *Linear) Train(batch []Example) error {
	l.Lock()
	defer l.Unlock()

	actions, _ := l.weights.Dims()
	inputs := make([][]float64, len(batch))
	for i, ex := range batch {
		if len(ex.Policy) != actions {
			return utils.Violation("example %d policy has %d entries, want %d", i, len(ex.Policy), actions)
		}
		x, err := l.encode(ex.Input)
		if err != nil {
			return err
		}
		inputs[i] = x
	}

	lr, decay := l.conf.LearningRate, 1-l.conf.LearningRate*l.conf.L2
	for epoch := 1; epoch <= l.conf.Epochs; epoch++ {
		policyLoss, valueLoss := 0.0, 0.0
		for i, ex := range batch {
			x := inputs[i]
			policy, value := l.forward(x)

			grad := make([]float64, actions)
			for a := range grad {
				grad[a] = policy[a] - ex.Policy[a]
				if ex.Policy[a] > 0 {
					policyLoss -= ex.Policy[a] * math.Log(math.Max(policy[a], 1e-12))
				}
			}
			valueLoss += (ex.Value - value) * (ex.Value - value)

			l.weights.Scale(decay, l.weights)
			l.weights.RankOne(l.weights, -lr, mat.NewVecDense(actions, grad), mat.NewVecDense(len(x), x))

			dv := (value - ex.Value) * (1 - value*value)
			floats.Scale(decay, l.value)
			floats.AddScaled(l.value, -lr*dv, x)
		}
		if len(batch) > 0 {
			log.Debug().
				Int("epoch", epoch).
				Float64("policy_loss", policyLoss/float64(len(batch))).
				Float64("value_loss", valueLoss/float64(len(batch))).
				Msg("trained linear model")
		}
	}
	return nil
}

func (l *Linear) SaveCheckpoint(name string) error {
	l.RLock()
	weights, err := l.weights.MarshalBinary()
	data := linearCheckpoint{Size: l.conf.Size, Weights: weights, Value: append([]float64(nil), l.value...)}
	l.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint %s: %w", name, err)
	}
	if err := l.store.Put(name, raw); err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", name, err)
	}
	return nil
}

func (l *Linear) LoadCheckpoint(name string) error {
	raw, err := l.store.Get(name)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint %s: %w", name, err)
	}

	var data linearCheckpoint
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to decode checkpoint %s: %w", name, err)
	}
	if data.Size != l.conf.Size {
		return fmt.Errorf("checkpoint %s is for a %dx%d board, want %dx%d", name, data.Size, data.Size, l.conf.Size, l.conf.Size)
	}
	var weights mat.Dense
	if err := weights.UnmarshalBinary(data.Weights); err != nil {
		return fmt.Errorf("failed to decode weights of %s: %w", name, err)
	}
	if len(data.Value) != planes*l.conf.Size*l.conf.Size+1 {
		return fmt.Errorf("checkpoint %s has %d value weights", name, len(data.Value))
	}

	l.Lock()
	defer l.Unlock()
	l.weights = &weights
	l.value = data.Value
	return nil
}
