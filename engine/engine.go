// Package engine drives games between two agents, alternating turns and
// tallying the outcome.
package engine

import (
	"time"

	"golang.org/x/exp/rand"

	"connect4/experiments/metrics"
	"connect4/game"
)

// Agent is anything that can pick a column from a board snapshot.
// Mount runs once before the first move to load any learned state.
type Agent interface {
	Mount()
	Act(g game.Grid) int
}

// Instrumented is optionally implemented by agents that collect
// per-decision metrics; the engine attaches them to move records.
type Instrumented interface {
	LastDecision() metrics.DecisionMetric
}

// RandomAgent plays a uniformly random legal column, the baseline
// opponent for evaluation and training runs.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent seeds the baseline; seed 0 draws from the clock.
func NewRandomAgent(seed uint64) *RandomAgent {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Mount() {}

func (a *RandomAgent) Act(g game.Grid) int {
	moves := game.FromGrid(g).LegalMoves()
	if len(moves) == 0 {
		return 0
	}
	return moves[a.rng.Intn(len(moves))]
}
