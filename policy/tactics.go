package policy

import "connect4/game"

// FindImmediateWin scans every legal column and returns one whose drop
// wins the game for player on the spot. The scan is exhaustive and
// deterministic: the lowest winning column is reported.
func FindImmediateWin(state game.State, player game.Disc) (int, bool) {
	probe := state.WithMover(player)
	for _, column := range probe.LegalMoves() {
		next, err := probe.Play(column)
		if err != nil {
			continue
		}
		if next.Winner() == player {
			return column, true
		}
	}
	return -1, false
}

// FindImmediateBlock returns a column the opponent would win with on
// their next turn, for player to occupy first. Only the deterministic
// one-ply threat is considered; deeper forks are left to the search.
func FindImmediateBlock(state game.State, player game.Disc) (int, bool) {
	return FindImmediateWin(state, player.Opponent())
}
