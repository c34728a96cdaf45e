package symmetry

import (
	"errors"
	"gomokuzero/utils"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomPosition(r *rand.Rand, n int) ([][]int, []float64) {
	board := make([][]int, n)
	for i := range board {
		board[i] = make([]int, n)
		for j := range board[i] {
			board[i][j] = r.Intn(3) - 1
		}
	}
	policy := make([]float64, n*n)
	for i := range policy {
		policy[i] = r.Float64()
	}
	return board, policy
}

func TestAugment(t *testing.T) {
	t.Run("returns eight pairs with the identity last", func(t *testing.T) {
		board := [][]int{{1, 0}, {0, -1}}
		policy := []float64{0.1, 0.2, 0.3, 0.4}

		pairs, err := Augment(board, policy)

		require.NoError(t, err)
		require.Len(t, pairs, Count)
		require.Equal(t, board, pairs[Count-1].Board)
		require.Equal(t, policy, pairs[Count-1].Policy)
	})

	t.Run("rotates counter-clockwise then mirrors", func(t *testing.T) {
		board := [][]int{{1, 2}, {3, 4}}
		policy := []float64{1, 2, 3, 4}

		pairs, err := Augment(board, policy)

		require.NoError(t, err)
		// one quarter turn: [[2 4] [1 3]]
		require.Equal(t, [][]int{{2, 4}, {1, 3}}, pairs[1].Board)
		require.Equal(t, []float64{2, 4, 1, 3}, pairs[1].Policy)
		// mirrored quarter turn: [[4 2] [3 1]]
		require.Equal(t, [][]int{{4, 2}, {3, 1}}, pairs[0].Board)
		require.Equal(t, []float64{4, 2, 3, 1}, pairs[0].Policy)
		// half turn
		require.Equal(t, [][]int{{4, 3}, {2, 1}}, pairs[3].Board)
	})

	t.Run("policy follows the board cell by cell", func(t *testing.T) {
		n := 4
		board := make([][]int, n)
		policy := make([]float64, n*n)
		for i := range board {
			board[i] = make([]int, n)
			for j := range board[i] {
				board[i][j] = i*n + j
				policy[i*n+j] = float64(i*n + j)
			}
		}

		pairs, err := Augment(board, policy)

		require.NoError(t, err)
		for k, pair := range pairs {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					require.Equal(t, float64(pair.Board[i][j]), pair.Policy[i*n+j],
						"Variant %d should move the policy with its cell", k)
				}
			}
		}
	})

	t.Run("does not alias the input", func(t *testing.T) {
		board := [][]int{{1, 0}, {0, 0}}
		policy := []float64{1, 0, 0, 0}

		pairs, err := Augment(board, policy)
		require.NoError(t, err)
		pairs[Count-1].Board[0][0] = 5
		pairs[Count-1].Policy[0] = 5

		require.Equal(t, 1, board[0][0])
		require.Equal(t, 1.0, policy[0])
	})

	t.Run("rejects a policy of the wrong length", func(t *testing.T) {
		_, err := Augment([][]int{{0, 0}, {0, 0}}, []float64{1, 0, 0})

		require.Error(t, err)
		require.True(t, errors.Is(err, utils.ErrContractViolation))
	})

	t.Run("rejects a non-square board", func(t *testing.T) {
		_, err := Augment([][]int{{0, 0}, {0}}, []float64{1, 0, 0, 0})

		require.True(t, errors.Is(err, utils.ErrContractViolation))
	})
}

func TestInverseRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 3, 5, 8} {
		board, policy := randomPosition(r, n)

		pairs, err := Augment(board, policy)
		require.NoError(t, err)

		for k, pair := range pairs {
			restored, err := Inverse(k, pair.Board, pair.Policy)
			require.NoError(t, err)
			require.Equal(t, board, restored.Board, "n=%d variant %d board should round trip", n, k)
			require.Equal(t, policy, restored.Policy, "n=%d variant %d policy should round trip", n, k)
		}
	}
}

func TestInverseRange(t *testing.T) {
	_, err := Inverse(Count, [][]int{{0}}, []float64{1})

	require.True(t, errors.Is(err, utils.ErrContractViolation))
}
