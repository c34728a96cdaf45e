package searcher

import (
	"fmt"
	"gomokuzero/game"
	"gomokuzero/metrics"
	"gomokuzero/utils"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

// MCTS is a PUCT tree search guided by an Evaluator. Simulations of one
// search call run in parallel on the shared Pool; calls themselves must not
// overlap.
type MCTS struct {
	pool        *Pool
	evaluator   Evaluator
	cPuct       float64
	virtualLoss float64
	simulations int
	actionSize  int
	root        *node
	metrics     metrics.Collector
	lastMetric  metrics.SearchMetric
}

func WithCPuct(cPuct float64) Option {
	return func(m *MCTS) {
		if cPuct > 0 {
			m.cPuct = cPuct
		}
	}
}

func WithVirtualLoss(virtualLoss float64) Option {
	return func(m *MCTS) {
		if virtualLoss >= 0 {
			m.virtualLoss = virtualLoss
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithActionSize(actionSize int) Option {
	return func(m *MCTS) {
		m.actionSize = actionSize
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(pool *Pool, evaluator Evaluator, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		pool:        pool,
		evaluator:   evaluator,
		cPuct:       DefaultCPuct,
		virtualLoss: DefaultVirtualLoss,
		simulations: DefaultSimulations,
		root:        newNode(nil, 1.0),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.actionSize <= 0 {
		panic("Must specify a positive action size")
	}
	if pool == nil || evaluator == nil {
		panic("Must specify a pool and an evaluator")
	}
	return m
}

// ActionProbs searches from state and returns the visit distribution of the
// root's moves sharpened by temperature. A temperature near zero puts all
// mass on the most visited move.
func (m *MCTS) ActionProbs(state game.State, temperature float64) ([]float64, error) {
	if err := m.search(state); err != nil {
		return nil, err
	}

	visits := m.root.childVisits(m.actionSize)
	best := utils.ArgMax(visits)
	if best < 0 || visits[best] == 0 {
		return nil, utils.Violation("search from a state without visited moves")
	}

	probs := make([]float64, m.actionSize)
	if temperature < greedyTemperature {
		probs[best] = 1
		return probs, nil
	}

	// Scale by the max count before exponentiating to stay finite
	exponent := 1.0 / temperature
	sum := 0.0
	for move, visit := range visits {
		if visit > 0 {
			probs[move] = math.Pow(visit/visits[best], exponent)
			sum += probs[move]
		}
	}
	for move := range probs {
		probs[move] /= sum
	}
	return probs, nil
}

// GreedyProbs returns the deterministic one-hot distribution of the most
// visited move.
func (m *MCTS) GreedyProbs(state game.State) ([]float64, error) {
	return m.ActionProbs(state, 0)
}

// UpdateWithMove re-roots the tree at the child reached by move, discarding
// its siblings. The tree is reset when the move has not been expanded.
func (m *MCTS) UpdateWithMove(move int) {
	child := m.root.child(move)
	if child == nil {
		m.root = newNode(nil, 1.0)
		m.metrics.SetTreeReused(false)
		return
	}
	child.Lock()
	child.parent = nil
	child.Unlock()
	m.root = child
	m.metrics.SetTreeReused(true)
}

// Reset discards the whole tree.
func (m *MCTS) Reset() {
	m.root = newNode(nil, 1.0)
	m.metrics.SetTreeReused(false)
}

// LastMetric returns the statistics of the latest search call.
func (m *MCTS) LastMetric() metrics.SearchMetric {
	return m.lastMetric
}

func (m *MCTS) search(state game.State) error {
	if ended, _ := state.Status(); ended {
		return utils.Violation("search from a terminal state")
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	root := m.root
	m.metrics.Start()
	wg.Add(m.simulations)
	for i := 0; i < m.simulations; i++ {
		m.pool.Submit(func() {
			defer wg.Done()
			if err := m.simulate(root, state.Clone()); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
			m.metrics.AddSimulation()
		})
	}
	wg.Wait()
	m.lastMetric = m.metrics.Complete()

	if firstErr != nil {
		return firstErr
	}
	log.Trace().Msgf("search finished: %d simulations in %s", m.lastMetric.Simulations, m.lastMetric.Duration)
	return nil
}

func (m *MCTS) simulate(root *node, state game.State) error {
	path := []*node{root}
	current := root
	for !current.isLeaf() {
		move, child := current.selectChild(m.cPuct, m.virtualLoss)
		if child == nil {
			break // Expanded without legal moves
		}
		if err := state.Play(move); err != nil {
			revert(path[1:])
			child.reverseLoss()
			return fmt.Errorf("failed to replay searched move %d: %w", move, err)
		}
		path = append(path, child)
		current = child
	}

	var value float64
	if ended, winner := state.Status(); ended {
		m.metrics.AddTerminal()
		value = terminalValue(state, winner)
	} else {
		policy, v, err := m.evaluator.Evaluate(state)
		if err != nil {
			revert(path[1:])
			return err
		}
		priors, err := maskPriors(policy, state.LegalMoves(), m.actionSize)
		if err != nil {
			revert(path[1:])
			return err
		}
		current.expand(priors, state.LegalMoves())
		m.metrics.AddExpansion()
		value = v
	}

	backup(path, -value)
	return nil
}

// backup walks from the leaf to the root. value is from the perspective of
// the player who moved into the leaf and flips sign every ply.
func backup(path []*node, value float64) {
	for i := len(path) - 1; i >= 0; i-- {
		if i > 0 {
			path[i].reverseLoss()
		}
		path[i].update(value)
		value = -value
	}
}

func revert(path []*node) {
	for _, n := range path {
		n.reverseLoss()
	}
}

// maskPriors restricts the policy to legal moves and renormalizes it,
// falling back to uniform when no legal move has prior mass.
func maskPriors(policy []float64, legal []bool, actionSize int) ([]float64, error) {
	if len(policy) != actionSize || len(legal) != actionSize {
		return nil, utils.Violation("policy has %d entries, want %d", len(policy), actionSize)
	}

	priors := make([]float64, actionSize)
	sum := 0.0
	count := 0
	for move, ok := range legal {
		if ok {
			priors[move] = math.Max(policy[move], 0)
			sum += priors[move]
			count++
		}
	}
	for move, ok := range legal {
		if !ok {
			continue
		}
		if sum > 0 {
			priors[move] /= sum
		} else {
			priors[move] = 1 / float64(count)
		}
	}
	return priors, nil
}
