// Package qstore holds the persistent state-action value table that the
// searcher consults for priors and updates from rollout experience.
package qstore

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"connect4/game"
)

// NeutralPrior is the lazily assumed estimate for unseen state-action
// pairs: indifferent between a sure win and a sure loss.
const NeutralPrior = 0.5

// Key indexes one learned estimate by position layout and column. The
// side to move is implied by the layout's piece parity.
type Key struct {
	Pos    game.PositionKey
	Column int
}

// Table maps state-action pairs to quality estimates in [0,1]. A nil
// path keeps the table memory-only. The mutex covers policies sharing
// one table within a process; concurrent access to the file itself from
// separate processes is not coordinated.
type Table struct {
	mu     sync.Mutex
	path   string
	values map[Key]float64
}

func NewTable(path string) *Table {
	return &Table{
		path:   path,
		values: make(map[Key]float64),
	}
}

// Lookup returns the learned estimate for the pair, or the neutral
// prior if none has been recorded.
func (t *Table) Lookup(pos game.PositionKey, column int) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.values[Key{Pos: pos, Column: column}]; ok {
		return v
	}
	return NeutralPrior
}

// Update moves the stored estimate toward the observed reward:
// new = old + rate*(reward - old). With rewards in [0,1] the estimate
// stays in [0,1] because the update is a convex blend.
func (t *Table) Update(pos game.PositionKey, column int, reward, rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := Key{Pos: pos, Column: column}
	old, ok := t.values[key]
	if !ok {
		old = NeutralPrior
	}
	t.values[key] = old + rate*(reward-old)
}

// BestAction returns the stored column with the highest estimate among
// the given legal columns, or false if the position has no recorded
// entry for any of them. Ties go to the lowest column so evaluations
// are reproducible.
func (t *Table) BestAction(pos game.PositionKey, legal []int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	best := -1
	bestValue := 0.0
	for _, column := range legal {
		v, ok := t.values[Key{Pos: pos, Column: column}]
		if !ok {
			continue
		}
		if best < 0 || v > bestValue {
			best = column
			bestValue = v
		}
	}
	return best, best >= 0
}

// Len reports the number of stored estimates.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.values)
}

// snapshot is the on-disk shape: a flat entry list encoded with gob.
type snapshot struct {
	Entries []entry
}

type entry struct {
	Pos    game.PositionKey
	Column int
	Value  float64
}

// Persist writes the whole table to the configured path. A memory-only
// table persists trivially.
func (t *Table) Persist() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.path == "" {
		return nil
	}

	if dir := filepath.Dir(t.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create value table directory %s: %w", dir, err)
		}
	}

	snap := snapshot{Entries: make([]entry, 0, len(t.values))}
	for k, v := range t.values {
		snap.Entries = append(snap.Entries, entry{Pos: k.Pos, Column: k.Column, Value: v})
	}

	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("create value table %s: %w", t.path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("encode value table %s: %w", t.path, err)
	}
	return nil
}

// Restore loads the persisted table. A missing or unreadable file
// leaves the table empty: the engine must always be able to run with no
// prior knowledge, so corruption is logged and absorbed, never fatal.
func (t *Table) Restore() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.values = make(map[Key]float64)
	if t.path == "" {
		return
	}

	f, err := os.Open(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", t.path).Msg("could not open value table; starting empty")
		}
		return
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		log.Warn().Err(err).Str("path", t.path).Msg("could not decode value table; starting empty")
		return
	}

	for _, e := range snap.Entries {
		t.values[Key{Pos: e.Pos, Column: e.Column}] = e.Value
	}
	log.Debug().Int("entries", len(t.values)).Str("path", t.path).Msg("restored value table")
}
