package main

import (
	"github.com/spf13/cobra"

	"connect4/config"
	"connect4/experiments"
)

var (
	trainEpisodes    int
	trainReportEvery int
	trainSeed        uint64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the agent's value table against the random baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		experiments.Train(cfg, trainEpisodes, trainReportEvery, trainSeed)
		return nil
	},
}

func init() {
	trainCmd.Flags().IntVar(&trainEpisodes, "episodes", 300, "training games to play")
	trainCmd.Flags().IntVar(&trainReportEvery, "report-every", 50, "progress report interval")
	trainCmd.Flags().Uint64Var(&trainSeed, "seed", 0, "color-assignment seed (0 uses the clock)")
}
