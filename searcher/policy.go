package searcher

import "math"

type puct struct {
	cPuct       float64
	virtualLoss float64
	sqrtN       float64
}

func newPUCT(cPuct, virtualLoss float64, N int) puct {
	if N < 1 {
		N = 1 // Let priors rank children before the parent has been visited
	}
	return puct{cPuct: cPuct, virtualLoss: virtualLoss, sqrtN: math.Sqrt(float64(N))}
}

// evaluate scores a child with prior p, value sum w, visits n and pending
// (virtual) visits v. Pending visits count as losses.
func (p puct) evaluate(prior, w float64, n, v int) float64 {
	visits := n + v
	u := p.cPuct * prior * p.sqrtN / float64(1+visits)
	if visits == 0 {
		return u
	}
	// PUCT = (w - vl*v)/(n+v) + c*p*sqrt(N)/(1+n+v)
	return (w-p.virtualLoss*float64(v))/float64(visits) + u
}
