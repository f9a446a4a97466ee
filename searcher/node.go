package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"connect4/game"
)

// node is one vertex of the search tree built for a single episode.
// A node owns its children; the parent pointer is a non-owning back
// reference used only while propagating rewards.
type node struct {
	state    game.State
	parent   *node
	move     int // column that produced this node, -1 at the root
	children map[int]*node
	untried  []int
	rewards  float64 // accumulated from the root player's perspective
	visits   int
}

func newNode(parent *node, move int, state game.State) *node {
	return &node{
		state:    state,
		parent:   parent,
		move:     move,
		children: make(map[int]*node),
		untried:  state.LegalMoves(),
	}
}

func (n *node) terminal() bool {
	return n.state.IsTerminal()
}

func (n *node) fullyExpanded() bool {
	return len(n.untried) == 0
}

// bestChild picks the child maximizing (1-blend)*prior + blend*ucb1.
// An unvisited child scores +Inf whenever the UCB term carries any
// weight, forcing a first visit before averages are compared. Score
// ties break uniformly at random without collecting the candidates:
// the k-th tied child replaces the pick with probability 1/k.
func (n *node) bestChild(blend, exploration float64, memory Memory, rng *rand.Rand) *node {
	if len(n.children) == 0 {
		panic("cannot select a child: node has no children")
	}

	logN := math.Log(float64(n.visits))
	key := n.state.Key()

	var best *node
	bestScore := math.Inf(-1)
	ties := 0
	for column := 0; column < game.Cols; column++ {
		child, ok := n.children[column]
		if !ok {
			continue
		}

		var score float64
		if child.visits == 0 {
			if blend > 0 {
				score = math.Inf(1)
			} else {
				score = memory.Lookup(key, column)
			}
		} else {
			exploitation := child.rewards / float64(child.visits)
			explore := exploration * math.Sqrt(logN/float64(child.visits))
			score = (1-blend)*memory.Lookup(key, column) + blend*(exploitation+explore)
		}

		switch {
		case score > bestScore:
			best = child
			bestScore = score
			ties = 1
		case score == bestScore:
			ties++
			if rng.Intn(ties) == 0 {
				best = child
			}
		}
	}
	return best
}

// expand plays one untried column chosen uniformly at random and
// attaches the resulting child.
func (n *node) expand(rng *rand.Rand) *node {
	i := rng.Intn(len(n.untried))
	column := n.untried[i]
	n.untried[i] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	state, err := n.state.Play(column)
	if err != nil {
		panic("expansion played an illegal column: " + err.Error())
	}
	child := newNode(n, column, state)
	n.children[column] = child
	return child
}

// bestMove returns the most visited root column, preferring the lowest
// column on equal visits so repeated runs are reproducible.
func (n *node) bestMove() (int, bool) {
	best := -1
	maxVisits := -1
	for column := 0; column < game.Cols; column++ {
		child, ok := n.children[column]
		if !ok {
			continue
		}
		if child.visits > maxVisits {
			maxVisits = child.visits
			best = column
		}
	}
	return best, best >= 0
}
