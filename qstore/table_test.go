package qstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"connect4/game"
)

func TestLookup(t *testing.T) {
	t.Run("returns the neutral prior for unseen pairs", func(t *testing.T) {
		table := NewTable("")
		got := table.Lookup(game.PositionKey{Red: 1}, 3)
		require.Equal(t, NeutralPrior, got, "Unseen pairs should read as the neutral prior")
	})

	t.Run("returns stored estimates", func(t *testing.T) {
		table := NewTable("")
		pos := game.PositionKey{Red: 1, Yellow: 2}
		table.Update(pos, 4, 1.0, 1.0)
		require.Equal(t, 1.0, table.Lookup(pos, 4))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("contracts toward the observed reward", func(t *testing.T) {
		table := NewTable("")
		pos := game.PositionKey{Red: 5}
		table.Update(pos, 0, 1.0, 0.3)

		got := table.Lookup(pos, 0)
		require.Greater(t, got, NeutralPrior, "Estimate should move above the prior toward a win")
		require.Less(t, got, 1.0, "Estimate should not overshoot the reward")
		require.InDelta(t, 0.5+0.3*(1.0-0.5), got, 1e-9)
	})

	t.Run("stays within [0,1] under repeated updates", func(t *testing.T) {
		table := NewTable("")
		pos := game.PositionKey{Yellow: 9}
		for i := 0; i < 100; i++ {
			table.Update(pos, 2, 1.0, 0.5)
		}
		require.LessOrEqual(t, table.Lookup(pos, 2), 1.0)

		for i := 0; i < 100; i++ {
			table.Update(pos, 2, 0.0, 0.5)
		}
		require.GreaterOrEqual(t, table.Lookup(pos, 2), 0.0)
	})

	t.Run("full learning rate adopts the reward", func(t *testing.T) {
		table := NewTable("")
		pos := game.PositionKey{Red: 7}
		table.Update(pos, 6, 0.0, 1.0)
		require.Equal(t, 0.0, table.Lookup(pos, 6))
	})
}

func TestBestAction(t *testing.T) {
	pos := game.PositionKey{Red: 3, Yellow: 4}

	t.Run("reports nothing for an unknown position", func(t *testing.T) {
		table := NewTable("")
		_, ok := table.BestAction(pos, []int{0, 1, 2})
		require.False(t, ok, "No stored entries should yield no action")
	})

	t.Run("picks the highest valued legal column", func(t *testing.T) {
		table := NewTable("")
		table.Update(pos, 1, 1.0, 0.5)
		table.Update(pos, 5, 0.0, 0.5)

		got, ok := table.BestAction(pos, []int{0, 1, 2, 3, 4, 5, 6})
		require.True(t, ok)
		require.Equal(t, 1, got, "Column 1 holds the higher estimate")
	})

	t.Run("filters out columns that are no longer legal", func(t *testing.T) {
		table := NewTable("")
		table.Update(pos, 1, 1.0, 0.5)

		_, ok := table.BestAction(pos, []int{0, 2, 3})
		require.False(t, ok, "A stored but illegal column must not be returned")
	})

	t.Run("breaks ties on the lowest column", func(t *testing.T) {
		table := NewTable("")
		table.Update(pos, 6, 1.0, 0.5)
		table.Update(pos, 2, 1.0, 0.5)

		got, ok := table.BestAction(pos, []int{0, 1, 2, 3, 4, 5, 6})
		require.True(t, ok)
		require.Equal(t, 2, got, "Equal estimates should resolve to the lowest column")
	})
}

func TestPersistence(t *testing.T) {
	t.Run("round trips a non-empty table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "values.gob")

		table := NewTable(path)
		table.Update(game.PositionKey{Red: 1}, 0, 1.0, 0.3)
		table.Update(game.PositionKey{Red: 1}, 3, 0.0, 0.3)
		table.Update(game.PositionKey{Yellow: 8}, 6, 0.5, 0.3)
		require.NoError(t, table.Persist())

		loaded := NewTable(path)
		loaded.Restore()
		require.Equal(t, table.Len(), loaded.Len(), "All entries should survive the round trip")
		require.Equal(t, table.Lookup(game.PositionKey{Red: 1}, 0), loaded.Lookup(game.PositionKey{Red: 1}, 0))
		require.Equal(t, table.Lookup(game.PositionKey{Red: 1}, 3), loaded.Lookup(game.PositionKey{Red: 1}, 3))
		require.Equal(t, table.Lookup(game.PositionKey{Yellow: 8}, 6), loaded.Lookup(game.PositionKey{Yellow: 8}, 6))
	})

	t.Run("missing file restores an empty table", func(t *testing.T) {
		table := NewTable(filepath.Join(t.TempDir(), "absent.gob"))
		table.Restore()
		require.Zero(t, table.Len())
	})

	t.Run("corrupt file restores an empty table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.gob")
		require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o644))

		table := NewTable(path)
		table.Restore()
		require.Zero(t, table.Len(), "Corruption should degrade to an empty table, not fail")
	})

	t.Run("memory-only table persists trivially", func(t *testing.T) {
		table := NewTable("")
		table.Update(game.PositionKey{Red: 2}, 1, 1.0, 0.5)
		require.NoError(t, table.Persist())
	})

	t.Run("restore discards in-memory state in favor of the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "values.gob")
		table := NewTable(path)
		table.Update(game.PositionKey{Red: 4}, 2, 1.0, 0.5)
		require.NoError(t, table.Persist())

		table.Update(game.PositionKey{Red: 9}, 5, 0.0, 0.5)
		table.Restore()
		require.Equal(t, 1, table.Len(), "Restore should reload exactly the persisted entries")
	})
}
