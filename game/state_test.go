package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// play drops a sequence of columns, failing the test on any illegal move.
func play(t *testing.T, s State, columns ...int) State {
	t.Helper()
	for _, c := range columns {
		next, err := s.Play(c)
		require.NoError(t, err, "Move %d should be legal", c)
		s = next
	}
	return s
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board allows every column", func(t *testing.T) {
		s := NewState()
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.LegalMoves(),
			"All columns should have room on an empty board")
	})

	t.Run("full column is excluded", func(t *testing.T) {
		s := play(t, NewState(), 3, 3, 3, 3, 3, 3)
		require.Equal(t, []int{0, 1, 2, 4, 5, 6}, s.LegalMoves(),
			"A column with six discs should not be playable")
		require.False(t, s.Legal(3), "Full column should be illegal")
	})
}

func TestPlay(t *testing.T) {
	t.Run("switches the mover", func(t *testing.T) {
		s := NewState()
		require.Equal(t, Red, s.Mover(), "Red should open")

		s = play(t, s, 0)
		require.Equal(t, Yellow, s.Mover(), "Yellow should move second")
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		s := NewState()
		_, err := s.Play(0)
		require.NoError(t, err)
		require.Equal(t, NewState(), s, "Play should leave the original state untouched")
	})

	t.Run("rejects a full column", func(t *testing.T) {
		s := play(t, NewState(), 0, 0, 0, 0, 0, 0)
		_, err := s.Play(0)
		require.ErrorAs(t, err, &IllegalMoveError{}, "Seventh disc should be rejected")
	})

	t.Run("rejects an out of range column", func(t *testing.T) {
		s := NewState()
		_, err := s.Play(7)
		require.Error(t, err, "Column 7 does not exist")
		_, err = s.Play(-1)
		require.Error(t, err, "Negative columns do not exist")
	})
}

func TestWinner(t *testing.T) {
	t.Run("vertical", func(t *testing.T) {
		s := play(t, NewState(), 0, 1, 0, 1, 0, 1, 0)
		require.Equal(t, Red, s.Winner(), "Four stacked red discs should win")
		require.True(t, s.IsTerminal())
	})

	t.Run("horizontal", func(t *testing.T) {
		s := play(t, NewState(), 0, 0, 1, 1, 2, 2, 3)
		require.Equal(t, Red, s.Winner(), "Four red discs on the bottom row should win")
	})

	t.Run("rising diagonal", func(t *testing.T) {
		s := play(t, NewState(), 0, 1, 1, 2, 2, 3, 2, 3, 3, 5, 3)
		require.Equal(t, Red, s.Winner(), "Red should complete the rising diagonal")
	})

	t.Run("falling diagonal", func(t *testing.T) {
		s := play(t, NewState(), 3, 2, 2, 1, 1, 0, 1, 0, 0, 5, 0)
		require.Equal(t, Red, s.Winner(), "Red should complete the falling diagonal")
	})

	t.Run("unfinished game has no winner", func(t *testing.T) {
		s := play(t, NewState(), 0, 1, 2)
		require.Equal(t, None, s.Winner())
		require.False(t, s.IsTerminal())
	})

	t.Run("yellow can win too", func(t *testing.T) {
		s := play(t, NewState(), 0, 3, 1, 3, 0, 3, 1, 3)
		require.Equal(t, Yellow, s.Winner(), "Four stacked yellow discs should win")
	})
}

func TestFromGrid(t *testing.T) {
	t.Run("round trips through Grid", func(t *testing.T) {
		s := play(t, NewState(), 3, 3, 2, 4, 0, 6)
		rebuilt := FromGrid(s.Grid())
		require.Equal(t, s.Key(), rebuilt.Key(), "Grid round trip should preserve the layout")
		require.Equal(t, s.Mover(), rebuilt.Mover(), "Mover should be recovered from parity")
	})

	t.Run("equal counts mean red to move", func(t *testing.T) {
		s := play(t, NewState(), 0, 1)
		require.Equal(t, Red, FromGrid(s.Grid()).Mover())
	})

	t.Run("red surplus means yellow to move", func(t *testing.T) {
		s := play(t, NewState(), 0, 1, 2)
		require.Equal(t, Yellow, FromGrid(s.Grid()).Mover())
	})
}

func TestKey(t *testing.T) {
	t.Run("identical layouts share a key regardless of move order", func(t *testing.T) {
		a := play(t, NewState(), 0, 1, 2, 3)
		b := play(t, NewState(), 2, 3, 0, 1)
		require.Equal(t, a.Key(), b.Key(), "Transpositions should produce identical keys")
	})

	t.Run("different layouts differ", func(t *testing.T) {
		a := play(t, NewState(), 0)
		b := play(t, NewState(), 1)
		require.NotEqual(t, a.Key(), b.Key())
	})
}
