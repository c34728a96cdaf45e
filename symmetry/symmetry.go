// Package symmetry expands a (board, policy) pair into the eight positions
// of the dihedral group of the square.
package symmetry

import "gomokuzero/utils"

// Count is the order of the dihedral group of the square.
const Count = 8

type Pair struct {
	Board  [][]int
	Policy []float64
}

// Augment returns the 8 symmetric variants of board and policy. Variant k
// rotates counter-clockwise by (k/2+1) quarter turns and, for even k, then
// mirrors left to right. The last variant is the identity.
func Augment(board [][]int, policy []float64) ([]Pair, error) {
	n := len(board)
	if err := check(board, policy); err != nil {
		return nil, err
	}

	grid := reshape(policy, n)
	pairs := make([]Pair, 0, Count)
	for k := 0; k < Count; k++ {
		turns, flip := variant(k)
		b := rotate(board, turns)
		p := rotate(grid, turns)
		if flip {
			b = mirror(b)
			p = mirror(p)
		}
		pairs = append(pairs, Pair{Board: b, Policy: ravel(p)})
	}
	return pairs, nil
}

// Inverse undoes variant k of Augment.
func Inverse(k int, board [][]int, policy []float64) (Pair, error) {
	if k < 0 || k >= Count {
		return Pair{}, utils.Violation("symmetry %d out of range", k)
	}
	if err := check(board, policy); err != nil {
		return Pair{}, err
	}

	turns, flip := variant(k)
	b, p := board, reshape(policy, len(board))
	if flip {
		b = mirror(b)
		p = mirror(p)
	}
	turns = (Count/2 - turns) % (Count / 2)
	return Pair{Board: rotate(b, turns), Policy: ravel(rotate(p, turns))}, nil
}

func check(board [][]int, policy []float64) error {
	n := len(board)
	for r, row := range board {
		if len(row) != n {
			return utils.Violation("board row %d has %d cells, want %d", r, len(row), n)
		}
	}
	if len(policy) != n*n {
		return utils.Violation("policy has %d entries, want %d", len(policy), n*n)
	}
	return nil
}

func variant(k int) (turns int, flip bool) {
	return (k/2 + 1) % 4, k%2 == 0
}

// rotate turns the grid counter-clockwise by a number of quarter turns.
func rotate[T any](grid [][]T, turns int) [][]T {
	n := len(grid)
	out := grid
	for t := 0; t < turns; t++ {
		next := newGrid[T](n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				next[i][j] = out[j][n-1-i]
			}
		}
		out = next
	}
	if turns == 0 {
		out = newGrid[T](n)
		for i := range grid {
			copy(out[i], grid[i])
		}
	}
	return out
}

func mirror[T any](grid [][]T) [][]T {
	n := len(grid)
	out := newGrid[T](n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = grid[i][n-1-j]
		}
	}
	return out
}

func newGrid[T any](n int) [][]T {
	grid := make([][]T, n)
	for i := range grid {
		grid[i] = make([]T, n)
	}
	return grid
}

func reshape(policy []float64, n int) [][]float64 {
	grid := newGrid[float64](n)
	for i := range grid {
		copy(grid[i], policy[i*n:(i+1)*n])
	}
	return grid
}

func ravel(grid [][]float64) []float64 {
	flat := make([]float64, 0, len(grid)*len(grid))
	for _, row := range grid {
		flat = append(flat, row...)
	}
	return flat
}
