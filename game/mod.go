package game

import "errors"

// Color is a stone color. It doubles as the player identity and as the
// outcome sign: Black wins +1, White wins -1, a draw is None.
type Color int

const (
	White Color = -1
	None  Color = 0
	Black Color = 1
)

func (c Color) Opponent() Color {
	return -c
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// State is a mutable two-player board game position over a square board of
// Size()*Size() cells indexed row-major.
type State interface {
	Size() int
	Board() [][]int
	LastMove() int // -1 before the first move
	CurrentColor() Color
	LegalMoves() []bool
	Play(move int) error
	Status() (ended bool, winner Color)
	Clone() State
}

// NewGame creates the initial state of a game where first moves first.
type NewGame func(first Color) State
