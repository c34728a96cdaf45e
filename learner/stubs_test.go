package learner

import (
	"errors"
	"gomokuzero/game"
	"gomokuzero/nnet"
)

// drawGame lets any cell be played and ends without a winner after limit
// moves, or with winner after limit moves when winner is set.
type drawGame struct {
	n      int
	board  [][]int
	color  game.Color
	last   int
	moves  int
	limit  int
	winner game.Color
}

func newDrawGame(n, limit int, winner game.Color) game.NewGame {
	return func(first game.Color) game.State {
		board := make([][]int, n)
		for i := range board {
			board[i] = make([]int, n)
		}
		return &drawGame{n: n, board: board, color: first, last: -1, limit: limit, winner: winner}
	}
}

func (g *drawGame) Size() int { return g.n }

func (g *drawGame) Board() [][]int {
	board := make([][]int, g.n)
	for i := range board {
		board[i] = append([]int(nil), g.board[i]...)
	}
	return board
}

func (g *drawGame) LastMove() int { return g.last }

func (g *drawGame) CurrentColor() game.Color { return g.color }

func (g *drawGame) LegalMoves() []bool {
	legal := make([]bool, g.n*g.n)
	for i := range legal {
		legal[i] = true
	}
	return legal
}

func (g *drawGame) Play(move int) error {
	g.board[move/g.n][move%g.n] = int(g.color)
	g.last = move
	g.moves++
	g.color = g.color.Opponent()
	return nil
}

func (g *drawGame) Status() (bool, game.Color) {
	if g.moves >= g.limit {
		return true, g.winner
	}
	return false, game.None
}

func (g *drawGame) Clone() game.State {
	clone := *g
	clone.board = g.Board()
	return &clone
}

// uniformSearch spreads probability evenly over every cell.
type uniformSearch struct {
	actions int
	updates int
	resets  int
}

func (s *uniformSearch) ActionProbs(game.State, float64) ([]float64, error) {
	probs := make([]float64, s.actions)
	for i := range probs {
		probs[i] = 1 / float64(s.actions)
	}
	return probs, nil
}

func (s *uniformSearch) GreedyProbs(state game.State) ([]float64, error) {
	return s.ActionProbs(state, 0)
}

func (s *uniformSearch) UpdateWithMove(int) { s.updates++ }

func (s *uniformSearch) Reset() { s.resets++ }

// firstLegalSearch puts all probability on the lowest legal cell.
type firstLegalSearch struct {
	updates int
	resets  int
}

func (s *firstLegalSearch) ActionProbs(state game.State, _ float64) ([]float64, error) {
	legal := state.LegalMoves()
	probs := make([]float64, len(legal))
	for i, ok := range legal {
		if ok {
			probs[i] = 1
			break
		}
	}
	return probs, nil
}

func (s *firstLegalSearch) GreedyProbs(state game.State) ([]float64, error) {
	return s.ActionProbs(state, 0)
}

func (s *firstLegalSearch) UpdateWithMove(int) { s.updates++ }

func (s *firstLegalSearch) Reset() { s.resets++ }

// recordingModel remembers checkpoint and training calls.
type recordingModel struct {
	saved   []string
	loaded  []string
	batches [][]nnet.Example
	saveErr error
	loadErr error
}

func (m *recordingModel) Infer(batch []nnet.Input) ([][]float64, []float64, error) {
	return nil, nil, errors.New("not used")
}

func (m *recordingModel) Train(batch []nnet.Example) error {
	m.batches = append(m.batches, batch)
	return nil
}

func (m *recordingModel) SaveCheckpoint(name string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, name)
	return nil
}

func (m *recordingModel) LoadCheckpoint(name string) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = append(m.loaded, name)
	return nil
}
