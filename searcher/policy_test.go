package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPUCTEvaluate(t *testing.T) {
	t.Run("unvisited child scores by prior only", func(t *testing.T) {
		policy := newPUCT(2.0, 3.0, 16)
		got := policy.evaluate(0.5, 0, 0, 0)

		require.InDelta(t, 2.0*0.5*4.0, got, 0.0001,
			"Should compute c*p*sqrt(N)")
	})

	t.Run("computing PUCT value", func(t *testing.T) {
		policy := newPUCT(2.0, 3.0, 100)
		got := policy.evaluate(0.25, 4.0, 10, 0)

		expected := 4.0/10 + 2.0*0.25*math.Sqrt(100)/11
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + c*p*sqrt(N)/(1+n)")
	})

	t.Run("unvisited parent still ranks by prior", func(t *testing.T) {
		policy := newPUCT(2.0, 3.0, 0)

		require.Greater(t, policy.evaluate(0.6, 0, 0, 0), policy.evaluate(0.4, 0, 0, 0))
	})

	t.Run("virtual loss lowers the score", func(t *testing.T) {
		policy := newPUCT(2.0, 3.0, 100)

		without := policy.evaluate(0.25, 4.0, 10, 0)
		with := policy.evaluate(0.25, 4.0, 10, 2)

		require.Less(t, with, without, "Pending simulations should discourage selection")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newPUCT(2.0, 3.0, 100)

		require.Greater(t, policy.evaluate(0.1, 8.0, 10, 0), policy.evaluate(0.1, 2.0, 10, 0))
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newPUCT(2.0, 0, 100)

		require.Greater(t, policy.evaluate(0.5, 0, 10, 0), policy.evaluate(0.5, 0, 20, 0))
	})
}
