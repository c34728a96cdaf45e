package searcher

import (
	"math"
	"sync"
)

type node struct {
	sync.Mutex
	parent      *node
	children    []*node // indexed by move, nil for illegal moves
	expanded    bool
	prior       float64
	visits      int
	rewards     float64 // sum of values from the perspective of the player who moved into the node
	virtualLoss int
}

func newNode(parent *node, prior float64) *node {
	return &node{parent: parent, prior: prior}
}

func (n *node) isLeaf() bool {
	n.Lock()
	defer n.Unlock()

	return !n.expanded
}

// expand adds one child per move with a positive-or-legal prior. A node is
// expanded at most once; concurrent expansions of the same leaf are no-ops.
func (n *node) expand(priors []float64, legal []bool) {
	n.Lock()
	defer n.Unlock()

	if n.expanded {
		return
	}
	n.children = make([]*node, len(priors))
	for move, ok := range legal {
		if ok {
			n.children[move] = newNode(n, priors[move])
		}
	}
	n.expanded = true
}

// selectChild picks the child with the highest PUCT score and applies a
// virtual loss to it.
func (n *node) selectChild(cPuct, virtualLoss float64) (int, *node) {
	n.Lock()
	defer n.Unlock()

	policy := newPUCT(cPuct, virtualLoss, n.visits)
	bestMove := -1
	bestScore := math.Inf(-1)
	for move, child := range n.children {
		if child == nil {
			continue
		}
		if score := child.score(policy); score > bestScore {
			bestScore = score
			bestMove = move
		}
	}
	if bestMove == -1 {
		return -1, nil
	}

	best := n.children[bestMove]
	best.applyLoss()
	return bestMove, best
}

func (n *node) score(policy puct) float64 {
	n.Lock()
	defer n.Unlock()

	return policy.evaluate(n.prior, n.rewards, n.visits, n.virtualLoss)
}

func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.virtualLoss++
}

func (n *node) reverseLoss() {
	n.Lock()
	defer n.Unlock()

	n.virtualLoss--
}

// update records one visit with value from the perspective of the player who
// moved into the node.
func (n *node) update(value float64) {
	n.Lock()
	defer n.Unlock()

	n.visits++
	n.rewards += value
}

func (n *node) Visits() int {
	n.Lock()
	defer n.Unlock()

	return n.visits
}

func (n *node) childVisits(actionSize int) []float64 {
	n.Lock()
	defer n.Unlock()

	visits := make([]float64, actionSize)
	for move, child := range n.children {
		if child != nil {
			visits[move] = float64(child.Visits())
		}
	}
	return visits
}

func (n *node) child(move int) *node {
	n.Lock()
	defer n.Unlock()

	if move < 0 || move >= len(n.children) {
		return nil
	}
	return n.children[move]
}
