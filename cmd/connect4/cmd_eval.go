package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"connect4/config"
	"connect4/experiments"
	"connect4/experiments/metrics"
)

var (
	evalGames  int
	evalOutDir string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the agent against the random baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		var writer *metrics.Writer
		if evalOutDir != "" {
			if writer, err = metrics.NewWriter(evalOutDir); err != nil {
				return err
			}
		}

		summary, err := experiments.EvaluateVsRandom(cfg, evalGames, writer)
		if err != nil {
			return err
		}

		fmt.Printf("games: %d  wins: %d  losses: %d  draws: %d  win rate: %.3f\n",
			summary.Games, summary.Wins, summary.Losses, summary.Draws, summary.WinRate)
		if writer != nil {
			fmt.Printf("records: %s\n", writer.Dir())
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().IntVar(&evalGames, "games", 20, "evaluation games to play")
	evalCmd.Flags().StringVar(&evalOutDir, "out", "", "directory for CSV records (omit to skip)")
}
