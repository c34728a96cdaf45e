package agent

import (
	"gomokuzero/utils"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// Entries closer to zero than this are outside the support
	supportEpsilon = 1e-6
	// Share of the blended distribution drawn from Dirichlet noise
	noiseWeight = 0.25
)

// AddDirichletNoise blends Dirichlet(alpha) noise into the support of probs
// and renormalizes. Entries outside the support stay exactly zero.
func AddDirichletNoise(probs []float64, alpha float64, rng *rand.Rand) ([]float64, error) {
	support := make([]int, 0, len(probs))
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) {
			return nil, utils.Violation("probability %v at %d", p, i)
		}
		if math.Abs(p) >= supportEpsilon {
			support = append(support, i)
		}
	}
	if len(support) == 0 {
		return nil, utils.Violation("distribution has no support")
	}
	if alpha <= 0 {
		return nil, utils.Violation("dirichlet alpha %v must be positive", alpha)
	}

	noise := []float64{1}
	if len(support) > 1 {
		alphas := make([]float64, len(support))
		for i := range alphas {
			alphas[i] = alpha
		}
		noise = distmv.NewDirichlet(alphas, rng).Rand(nil)
	}

	noisy := make([]float64, len(probs))
	sum := 0.0
	for j, i := range support {
		noisy[i] = (1-noiseWeight)*probs[i] + noiseWeight*noise[j]
		sum += noisy[i]
	}
	for _, i := range support {
		noisy[i] /= sum
	}
	return noisy, nil
}

// Sample draws an index with probability proportional to its weight.
func Sample(probs []float64, rng *rand.Rand) int {
	return int(distuv.NewCategorical(probs, rng).Rand())
}
