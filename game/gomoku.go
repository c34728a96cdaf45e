package game

import "fmt"

// Gomoku is an n x n board where the first player to line up k stones
// horizontally, vertically or diagonally wins. A full board is a draw.
type Gomoku struct {
	n        int
	k        int
	cells    []Color
	current  Color
	lastMove int
	moves    int
	winner   Color
	ended    bool
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func NewGomoku(n, k int, first Color) *Gomoku {
	if first != Black && first != White {
		panic("first player must be black or white")
	}
	return &Gomoku{
		n:        n,
		k:        k,
		cells:    make([]Color, n*n),
		current:  first,
		lastMove: -1,
	}
}

// GomokuFactory binds the board geometry so that only the starting color varies.
func GomokuFactory(n, k int) NewGame {
	return func(first Color) State {
		return NewGomoku(n, k, first)
	}
}

func (g *Gomoku) Size() int {
	return g.n
}

func (g *Gomoku) Board() [][]int {
	board := make([][]int, g.n)
	for r := range board {
		board[r] = make([]int, g.n)
		for c := range board[r] {
			board[r][c] = int(g.cells[r*g.n+c])
		}
	}
	return board
}

func (g *Gomoku) LastMove() int {
	return g.lastMove
}

func (g *Gomoku) CurrentColor() Color {
	return g.current
}

func (g *Gomoku) LegalMoves() []bool {
	legal := make([]bool, len(g.cells))
	if g.ended {
		return legal
	}
	for i, cell := range g.cells {
		legal[i] = cell == None
	}
	return legal
}

func (g *Gomoku) Play(move int) error {
	if g.ended {
		return ErrGameOver
	}
	if move < 0 || move >= len(g.cells) || g.cells[move] != None {
		return fmt.Errorf("%w: %d", ErrIllegalMove, move)
	}

	g.cells[move] = g.current
	g.lastMove = move
	g.moves++

	if g.connects(move) {
		g.ended = true
		g.winner = g.current
	} else if g.moves == len(g.cells) {
		g.ended = true
		g.winner = None
	}

	g.current = g.current.Opponent()
	return nil
}

func (g *Gomoku) Status() (bool, Color) {
	return g.ended, g.winner
}

func (g *Gomoku) Clone() State {
	clone := *g
	clone.cells = append([]Color(nil), g.cells...)
	return &clone
}

// connects reports whether the stone at move completes a line of k.
func (g *Gomoku) connects(move int) bool {
	color := g.cells[move]
	row, col := move/g.n, move%g.n
	for _, d := range directions {
		count := 1 + g.count(row, col, d[0], d[1], color) + g.count(row, col, -d[0], -d[1], color)
		if count >= g.k {
			return true
		}
	}
	return false
}

func (g *Gomoku) count(row, col, dr, dc int, color Color) int {
	count := 0
	for r, c := row+dr, col+dc; r >= 0 && r < g.n && c >= 0 && c < g.n; r, c = r+dr, c+dc {
		if g.cells[r*g.n+c] != color {
			break
		}
		count++
	}
	return count
}
