// Package experiments evaluates and trains agents against the random
// baseline, recording results as CSV for offline analysis.
package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"connect4/config"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/policy"
)

// Summary tallies one evaluation run from the agent's perspective.
type Summary struct {
	Games   int
	Wins    int
	Losses  int
	Draws   int
	WinRate float64
}

// EvaluateVsRandom plays the configured agent as red against the random
// baseline for the given number of games. A fresh policy is mounted per
// game, so learning carries over only through the persisted table. The
// writer may be nil to skip CSV output.
func EvaluateVsRandom(cfg config.Agent, games int, writer *metrics.Writer) (Summary, error) {
	summary := Summary{Games: games}
	gameRecords := make([]metrics.GameRecord, 0, games)
	var moveRecords []metrics.MoveRecord

	for i := 0; i < games; i++ {
		agent := policy.New(cfg, policy.WithCollector(metrics.NewCollector()))
		local := engine.NewLocal(agent, engine.NewRandomAgent(0))

		start := time.Now()
		result := local.Run()

		switch result.Winner {
		case game.Red:
			summary.Wins++
		case game.Yellow:
			summary.Losses++
		default:
			summary.Draws++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:     i + 1,
			Agent1: 1,
			Agent2: 0,
			GameMetric: metrics.GameMetric{
				StartingAgent: 1,
				Winner:        result.Winner.String(),
				StartTime:     start,
				EndTime:       start.Add(result.Duration),
				Duration:      result.Duration,
				TotalMoves:    len(result.Moves),
			},
		})
		for _, move := range result.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game: i + 1,
				MoveMetric: metrics.MoveMetric{
					Step:           move.Step,
					Player:         move.Player.String(),
					Column:         move.Column,
					DecisionMetric: move.Metric,
				},
			})
		}

		log.Info().
			Int("game", i+1).
			Int("of", games).
			Stringer("winner", result.Winner).
			Msg("evaluation game finished")
	}

	if summary.Games > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.Games)
	}

	if writer != nil {
		configs := []metrics.AgentConfig{
			{ID: 0}, // random baseline
			{
				ID:           1,
				Simulations:  cfg.Simulations,
				Exploration:  cfg.Exploration,
				Blend:        cfg.Blend,
				LearningRate: cfg.LearningRate,
				Seed:         cfg.Seed,
			},
		}
		if err := writer.WriteAgentConfigs(configs); err != nil {
			return summary, err
		}
		if err := writer.WriteGameRecords(gameRecords); err != nil {
			return summary, err
		}
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			return summary, err
		}
	}

	log.Info().
		Int("wins", summary.Wins).
		Int("losses", summary.Losses).
		Int("draws", summary.Draws).
		Float64("win_rate", summary.WinRate).
		Msg("evaluation complete")
	return summary, nil
}
