package nnet

import "gomokuzero/game"

// Input is what a model sees of a position.
type Input struct {
	Board    [][]int
	LastMove int
	Color    game.Color // color to move
}

// Example is one training target: the search policy for the position and
// the final outcome from the perspective of Color.
type Example struct {
	Input
	Policy []float64
	Value  float64
}

// Model is a policy/value function over board positions. Infer may be called
// from many goroutines; Train and LoadCheckpoint must not overlap with it.
type Model interface {
	Infer(batch []Input) (policies [][]float64, values []float64, err error)
	Train(batch []Example) error
	SaveCheckpoint(name string) error
	LoadCheckpoint(name string) error
}

// Store keeps serialized checkpoints by name.
type Store interface {
	Put(name string, data []byte) error
	Get(name string) ([]byte, error)
}
