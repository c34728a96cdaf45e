package learner

import (
	"context"
	"fmt"
	"gomokuzero/buffer"
	"gomokuzero/config"
	"gomokuzero/game"
	"gomokuzero/metrics"
	"gomokuzero/nnet"
	"gomokuzero/searcher"
	"gomokuzero/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	// BestCheckpoint holds the parameters of the last accepted model
	BestCheckpoint = "best_checkpoint"
	// Checkpoint holds the candidate's parameters before each training step
	Checkpoint = "checkpoint"
)

// SearchFactory builds a fresh search guided by model.
type SearchFactory func(model nnet.Model) agent.Searcher

type Option func(l *Learner)

func WithSearchFactory(factory SearchFactory) Option {
	return func(l *Learner) {
		if factory != nil {
			l.newSearch = factory
		}
	}
}

func WithGameFactory(factory game.NewGame) Option {
	return func(l *Learner) {
		if factory != nil {
			l.newGame = factory
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(l *Learner) {
		if rng != nil {
			l.rng = rng
		}
	}
}

// Learner drives training: self-play fills the buffer, the candidate trains
// on sampled batches and every CheckFreq iterations it contests the best
// model for promotion. It is not safe for concurrent use.
type Learner struct {
	conf        config.Config
	candidate   nnet.Model
	best        nnet.Model
	newGame     game.NewGame
	newSearch   SearchFactory
	exploration agent.Exploration
	buffer      *buffer.Ring[nnet.Example]
	rng         *rand.Rand
	iterations  []metrics.IterationRecord
	contests    []metrics.ContestRecord
}

// New expects conf to be validated. candidate and best must be distinct
// models sharing a checkpoint store.
func New(conf config.Config, candidate, best nnet.Model, pool *searcher.Pool, options ...Option) *Learner {
	l := &Learner{
		conf:      conf,
		candidate: candidate,
		best:      best,
		newGame:   game.GomokuFactory(conf.N, conf.NInRow),
		exploration: agent.Exploration{
			Temperature:    conf.Temp,
			ExploreNum:     conf.ExploreNum,
			DirichletAlpha: conf.DirichletAlpha,
		},
		buffer: buffer.NewRing[nnet.Example](conf.BufferSize),
		rng:    rand.New(rand.NewSource(conf.Seed)),
	}
	l.newSearch = func(model nnet.Model) agent.Searcher {
		return searcher.NewMCTS(pool, NewInferenceAdapter(model),
			searcher.WithCPuct(conf.CPuct),
			searcher.WithVirtualLoss(conf.CVirtualLoss),
			searcher.WithSimulations(conf.NumMCTSSims),
			searcher.WithActionSize(conf.N*conf.N),
			searcher.WithMetrics(metrics.NewCollector()),
		)
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Learn runs conf.NumIters iterations. ctx is checked between episodes and
// between iterations; a search or training call in flight is not interrupted.
// Model and checkpoint errors abort the run.
func (l *Learner) Learn(ctx context.Context) error {
	if err := l.candidate.SaveCheckpoint(BestCheckpoint); err != nil {
		return err
	}

	for i := 1; i <= l.conf.NumIters; i++ {
		start := time.Now()
		record := metrics.IterationRecord{Iteration: i}
		log.Info().Msgf("ITER :: %d", i)

		first := game.Black
		for e := 1; e <= l.conf.NumEps; e++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			examples, err := l.SelfPlay(first)
			if err != nil {
				return fmt.Errorf("iteration %d episode %d: %w", i, e, err)
			}
			l.buffer.Extend(examples...)
			first = first.Opponent()

			record.Episodes++
			record.Examples += len(examples)
			log.Info().
				Int("episode", e).
				Int("examples", len(examples)).
				Int("buffer", l.buffer.Len()).
				Msg("self-play done")
		}
		record.BufferSize = l.buffer.Len()

		if l.buffer.Len() >= l.conf.BatchSize {
			if err := l.train(); err != nil {
				return fmt.Errorf("iteration %d: %w", i, err)
			}
			record.Trained = true

			if i%l.conf.CheckFreq == 0 {
				if err := l.evaluate(i); err != nil {
					return fmt.Errorf("iteration %d: %w", i, err)
				}
			}
		} else {
			log.Info().Msgf("buffer holds %d of %d examples, skipping training", l.buffer.Len(), l.conf.BatchSize)
		}

		record.Duration = time.Since(start)
		l.iterations = append(l.iterations, record)
	}
	return nil
}

func (l *Learner) train() error {
	batch, err := l.buffer.Sample(l.conf.BatchSize, l.rng)
	if err != nil {
		return err
	}
	if err := l.candidate.SaveCheckpoint(Checkpoint); err != nil {
		return err
	}
	return l.candidate.Train(batch)
}

// evaluate contests the candidate against the best model and saves the
// candidate as best when promoted.
func (l *Learner) evaluate(iteration int) error {
	if err := l.best.LoadCheckpoint(BestCheckpoint); err != nil {
		return err
	}

	record := metrics.ContestRecord{Iteration: iteration, StartTime: time.Now()}
	result, err := l.Contest(l.newSearch(l.candidate), l.newSearch(l.best), l.conf.ContestNum)
	if err != nil {
		return err
	}
	decision := Promote(result, l.conf.UpdateThreshold)
	record.EndTime = time.Now()

	log.Info().
		Int("candidate", result.CandidateWins).
		Int("incumbent", result.IncumbentWins).
		Int("draws", result.Draws).
		Float64("winRate", result.WinRate()).
		Msgf("contest %s", decision)

	if decision == Accept {
		if err := l.candidate.SaveCheckpoint(BestCheckpoint); err != nil {
			return err
		}
	}

	record.Games = result.Total()
	record.CandidateWins = result.CandidateWins
	record.IncumbentWins = result.IncumbentWins
	record.Draws = result.Draws
	record.WinRate = result.WinRate()
	record.Accepted = decision == Accept
	l.contests = append(l.contests, record)
	return nil
}

// BufferSize returns the number of examples currently held.
func (l *Learner) BufferSize() int {
	return l.buffer.Len()
}

// Records returns what has been recorded of the run so far.
func (l *Learner) Records() ([]metrics.IterationRecord, []metrics.ContestRecord) {
	return append([]metrics.IterationRecord(nil), l.iterations...), append([]metrics.ContestRecord(nil), l.contests...)
}
