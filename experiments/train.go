package experiments

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"connect4/config"
	"connect4/engine"
	"connect4/game"
	"connect4/policy"
)

// TrainingSummary tallies a training run from the learner's view.
type TrainingSummary struct {
	Episodes     int
	Wins         int
	Losses       int
	Draws        int
	WinsAsFirst  int
	WinsAsSecond int
	WinRate      float64
}

// Train runs the learning agent against the random baseline for the
// given number of episodes, alternating colors at random so the table
// accumulates experience from both sides of the board. The learner is
// mounted once and keeps persisting its table after every search, so an
// interrupted run loses at most the current game's experience.
func Train(cfg config.Agent, episodes, reportEvery int, seed uint64) TrainingSummary {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	learner := policy.New(cfg)
	learner.Mount()
	baseline := engine.NewRandomAgent(rng.Uint64())

	summary := TrainingSummary{Episodes: episodes}
	for episode := 1; episode <= episodes; episode++ {
		learnerIsRed := rng.Intn(2) == 0

		var local *engine.Local
		if learnerIsRed {
			local = engine.NewLocal(premounted{learner}, baseline)
		} else {
			local = engine.NewLocal(baseline, premounted{learner})
		}
		result := local.Run()

		learnerColor := game.Yellow
		if learnerIsRed {
			learnerColor = game.Red
		}
		switch result.Winner {
		case learnerColor:
			summary.Wins++
			if learnerIsRed {
				summary.WinsAsFirst++
			} else {
				summary.WinsAsSecond++
			}
		case game.None:
			summary.Draws++
		default:
			summary.Losses++
		}

		if reportEvery > 0 && episode%reportEvery == 0 {
			log.Info().
				Int("episode", episode).
				Int("of", episodes).
				Int("wins", summary.Wins).
				Int("losses", summary.Losses).
				Int("draws", summary.Draws).
				Int("table_entries", learner.Table().Len()).
				Msg("training progress")
		}
	}

	if summary.Episodes > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.Episodes)
	}
	log.Info().
		Int("episodes", summary.Episodes).
		Float64("win_rate", summary.WinRate).
		Int("wins_as_first", summary.WinsAsFirst).
		Int("wins_as_second", summary.WinsAsSecond).
		Msg("training complete")
	return summary
}

// premounted keeps the engine from re-restoring the learner's table at
// the start of every episode, which would discard unpersisted entries
// for a memory-only table.
type premounted struct {
	agent engine.Agent
}

func (p premounted) Mount() {}

func (p premounted) Act(g game.Grid) int {
	return p.agent.Act(g)
}
