package searcher

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"connect4/experiments/metrics"
	"connect4/game"
)

// Rewards from the root player's perspective. The bounded range keeps
// every learned estimate a convex blend inside [0,1].
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

// Defaults for the search hyperparameters.
const (
	DefaultSimulations  = 200
	DefaultBlend        = 0.7 // weight on UCB1 vs the learned prior
	DefaultLearningRate = 0.3
)

// DefaultExploration is the UCB1 exploration constant c.
var DefaultExploration = math.Sqrt2

// Memory supplies learned priors to selection and absorbs the
// experience gathered by an episode. *qstore.Table implements it.
type Memory interface {
	Lookup(pos game.PositionKey, column int) float64
	Update(pos game.PositionKey, column int, reward, rate float64)
	Persist() error
}

// experience is one traversed edge with its observed outcome, replayed
// into memory once the episode completes.
type experience struct {
	pos    game.PositionKey
	column int
	reward float64
}

type Option func(m *MCTS)

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithBlend sets the weight on UCB1 in the selection score: 1 is pure
// UCB1, 0 is greedy selection on the learned priors.
func WithBlend(blend float64) Option {
	return func(m *MCTS) {
		if blend >= 0 && blend <= 1 {
			m.blend = blend
		}
	}
}

func WithLearningRate(rate float64) Option {
	return func(m *MCTS) {
		if rate > 0 && rate <= 1 {
			m.rate = rate
		}
	}
}

// WithRNG injects the generator used for expansion, rollouts and
// tie-breaking. Tests pass a seeded source for reproducible searches.
func WithRNG(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// MCTS runs one search episode per call: a fixed budget of
// select/expand/rollout/backup iterations over a tree that lives only
// for that call. Selection blends UCB1 with priors from memory, and the
// episode's rollout outcomes are fed back into memory afterwards.
type MCTS struct {
	simulations int
	exploration float64
	blend       float64
	rate        float64
	memory      Memory
	rng         *rand.Rand
	metrics     metrics.Collector
}

func NewMCTS(memory Memory, options ...Option) *MCTS {
	if memory == nil {
		panic("searcher requires a value memory")
	}
	m := &MCTS{
		simulations: DefaultSimulations,
		exploration: DefaultExploration,
		blend:       DefaultBlend,
		rate:        DefaultLearningRate,
		memory:      memory,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search returns the most visited root column after the configured
// number of iterations. It never fails: with no legal moves it returns
// column 0, and with an empty tree it returns the first legal column.
func (m *MCTS) Search(state game.State) int {
	legal := state.LegalMoves()
	if len(legal) == 0 {
		log.Warn().Msg("search requested on a position with no legal moves")
		return 0
	}

	root := newNode(nil, -1, state)
	rootPlayer := state.Mover()
	history := make([]experience, 0, m.simulations*4)

	for i := 0; i < m.simulations; i++ {
		history = m.simulate(root, rootPlayer, history)
		m.metrics.AddEpisode()
	}

	m.learn(history)

	column, ok := root.bestMove()
	if !ok {
		return legal[0]
	}
	return column
}

// simulate runs one select/expand/rollout/backup iteration and returns
// the history slice extended with every edge the backup walked.
func (m *MCTS) simulate(root *node, rootPlayer game.Disc, history []experience) []experience {
	n := root

	// Selection: descend while fully expanded and not terminal.
	for !n.terminal() && n.fullyExpanded() {
		n = n.bestChild(m.blend, m.exploration, m.memory, m.rng)
	}

	// Expansion: attach one untried move.
	if !n.terminal() && !n.fullyExpanded() {
		n = n.expand(m.rng)
	}

	// Rollout to a terminal outcome.
	reward := m.rollout(n.state, rootPlayer)

	// Backpropagation, recording every traversed edge.
	for ; n != nil; n = n.parent {
		n.visits++
		n.rewards += reward
		if n.parent != nil {
			history = append(history, experience{
				pos:    n.parent.state.Key(),
				column: n.move,
				reward: reward,
			})
		}
	}
	return history
}

// rollout plays uniformly random legal moves to the end of the game and
// scores the outcome for the root player.
func (m *MCTS) rollout(state game.State, rootPlayer game.Disc) float64 {
	for !state.IsTerminal() {
		moves := state.LegalMoves()
		next, err := state.Play(moves[m.rng.Intn(len(moves))])
		if err != nil {
			panic("rollout played an illegal column: " + err.Error())
		}
		state = next
	}
	m.metrics.AddPlayout()

	switch state.Winner() {
	case rootPlayer:
		return Win
	case game.None:
		return Draw
	default:
		return Loss
	}
}

// learn replays the episode's experience into memory and persists it.
// Search and learning share the same rollouts, so the learning cost is
// amortized into the search budget.
func (m *MCTS) learn(history []experience) {
	if len(history) == 0 {
		return
	}
	for _, e := range history {
		m.memory.Update(e.pos, e.column, e.reward, m.rate)
	}
	if err := m.memory.Persist(); err != nil {
		log.Warn().Err(err).Msg("could not persist value table; continuing in memory")
	}
}
