// Package policy is the decision façade: tactical short circuits first,
// then a learned-table lookup, then a full MCTS episode.
package policy

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"connect4/config"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/qstore"
	"connect4/searcher"
)

type Option func(p *Policy)

// WithCollector instruments decisions with the given collector.
func WithCollector(collector metrics.Collector) Option {
	return func(p *Policy) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

// WithTable substitutes a shared value table, letting several policies
// (or a test) learn into one store.
func WithTable(table *qstore.Table) Option {
	return func(p *Policy) {
		if table != nil {
			p.table = table
		}
	}
}

// Policy owns the Q-table lifecycle and answers one move per call. A
// decision never fails: every degenerate input degrades to a legal
// column, or to column 0 when none exists.
type Policy struct {
	cfg     config.Agent
	table   *qstore.Table
	mcts    *searcher.MCTS
	rng     *rand.Rand
	metrics metrics.Collector
	last    metrics.DecisionMetric
}

func New(cfg config.Agent, options ...Option) *Policy {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	p := &Policy{
		cfg:     cfg,
		table:   qstore.NewTable(cfg.TablePath),
		rng:     rand.New(rand.NewSource(seed)),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}

	p.mcts = searcher.NewMCTS(p.table,
		searcher.WithSimulations(cfg.Simulations),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithBlend(cfg.Blend),
		searcher.WithLearningRate(cfg.LearningRate),
		searcher.WithRNG(p.rng),
		searcher.WithCollector(p.metrics),
	)
	return p
}

// Mount loads the persisted learning state. Run it once before play.
func (p *Policy) Mount() {
	p.table.Restore()
}

// Table exposes the policy's value store, mainly for training drivers.
func (p *Policy) Table() *qstore.Table {
	return p.table
}

// Act answers a raw board snapshot, deriving the mover from piece
// parity: red opens, so red is on turn exactly when the counts match.
func (p *Policy) Act(g game.Grid) int {
	return p.Decide(game.FromGrid(g))
}

// Decide returns a legal column for the position's mover. The ladder:
// forced move, immediate win, immediate block, best known action, MCTS.
// A stage proposing an illegal column falls through to the next one.
func (p *Policy) Decide(state game.State) int {
	p.metrics.Start()
	defer func() {
		p.last = p.metrics.Complete()
	}()

	legal := state.LegalMoves()
	if len(legal) == 0 {
		log.Warn().Msg("decision requested on a board with no legal moves")
		return 0
	}
	if len(legal) == 1 {
		p.metrics.SetStage(metrics.StageForced)
		return legal[0]
	}

	mover := state.Mover()
	if column, ok := FindImmediateWin(state, mover); ok && state.Legal(column) {
		p.metrics.SetStage(metrics.StageWin)
		return column
	}
	if column, ok := FindImmediateBlock(state, mover); ok && state.Legal(column) {
		p.metrics.SetStage(metrics.StageBlock)
		return column
	}
	if column, ok := p.table.BestAction(state.Key(), legal); ok && state.Legal(column) {
		p.metrics.SetStage(metrics.StageLookup)
		return column
	}

	p.metrics.SetStage(metrics.StageSearch)
	if column := p.mcts.Search(state); state.Legal(column) {
		return column
	}

	p.metrics.SetStage(metrics.StageFallback)
	return legal[0]
}

// LastDecision reports the collected metrics of the most recent call.
func (p *Policy) LastDecision() metrics.DecisionMetric {
	return p.last
}
