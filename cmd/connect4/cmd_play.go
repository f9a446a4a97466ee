package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"connect4/config"
	"connect4/game"
	"connect4/policy"
)

var playSecond bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game against the agent in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		agent := policy.New(cfg)
		agent.Mount()

		human := game.Red
		if playSecond {
			human = game.Yellow
		}

		state := game.NewState()
		reader := bufio.NewReader(os.Stdin)
		render(state)

		for !state.IsTerminal() {
			var column int
			if state.Mover() == human {
				column, err = readColumn(reader, state)
				if err != nil {
					return err
				}
			} else {
				column = agent.Decide(state)
				fmt.Printf("agent plays column %d\n", column)
			}

			if state, err = state.Play(column); err != nil {
				fmt.Println(err)
				continue
			}
			render(state)
		}

		switch winner := state.Winner(); winner {
		case game.None:
			fmt.Println("draw")
		case human:
			fmt.Println("you win!")
		default:
			fmt.Println("the agent wins")
		}
		return nil
	},
}

func init() {
	playCmd.Flags().BoolVar(&playSecond, "second", false, "let the agent open the game")
}

func readColumn(reader *bufio.Reader, state game.State) (int, error) {
	for {
		fmt.Printf("your move %v: ", state.LegalMoves())
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		column, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && state.Legal(column) {
			return column, nil
		}
		fmt.Println("pick one of the open columns")
	}
}

func render(state game.State) {
	p := termenv.ColorProfile()
	red := termenv.String("●").Foreground(p.Color("1"))
	yellow := termenv.String("●").Foreground(p.Color("3"))

	g := state.Grid()
	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Cols; c++ {
			switch g[r][c] {
			case game.Red:
				fmt.Printf(" %s", red)
			case game.Yellow:
				fmt.Printf(" %s", yellow)
			default:
				fmt.Print(" ·")
			}
		}
		fmt.Println()
	}
	fmt.Println(" 0 1 2 3 4 5 6")
}
