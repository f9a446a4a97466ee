package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"connect4/experiments/metrics"
	"connect4/game"
)

// Move is one played turn with any metrics the agent exposed.
type Move struct {
	Step   int
	Player game.Disc
	Column int
	Metric metrics.DecisionMetric
}

// Result summarizes one finished game. Winner is None on a draw.
type Result struct {
	Winner   game.Disc
	Moves    []Move
	Duration time.Duration
}

// Local alternates turns between a red and a yellow agent on one
// in-process board until the game ends.
type Local struct {
	red    Agent
	yellow Agent
}

func NewLocal(red, yellow Agent) *Local {
	if red == nil || yellow == nil {
		panic("local engine needs two agents")
	}
	return &Local{red: red, yellow: yellow}
}

// Run plays a full game from the empty board. An agent answering with
// an illegal column is corrected to the first legal one; the engine is
// defensive so a buggy agent forfeits tempo, not the process.
func (e *Local) Run() Result {
	e.red.Mount()
	e.yellow.Mount()

	agents := map[game.Disc]Agent{game.Red: e.red, game.Yellow: e.yellow}
	state := game.NewState()
	start := time.Now()

	var moves []Move
	for step := 1; !state.IsTerminal(); step++ {
		mover := state.Mover()
		agent := agents[mover]

		column := agent.Act(state.Grid())
		if !state.Legal(column) {
			log.Warn().
				Stringer("player", mover).
				Int("column", column).
				Msg("agent answered an illegal column; playing the first legal one")
			column = state.LegalMoves()[0]
		}

		next, err := state.Play(column)
		if err != nil {
			panic("engine played an illegal column: " + err.Error())
		}
		state = next

		move := Move{Step: step, Player: mover, Column: column}
		if agent, ok := agent.(Instrumented); ok {
			move.Metric = agent.LastDecision()
		}
		moves = append(moves, move)
	}

	return Result{
		Winner:   state.Winner(),
		Moves:    moves,
		Duration: time.Since(start),
	}
}
