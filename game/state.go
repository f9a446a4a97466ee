package game

import (
	"math/bits"
	"strings"
)

// Each column occupies 7 bits (6 playable rows plus a sentinel bit) so
// that the four win directions become constant shift distances.
const colStride = 7

// PositionKey is a canonical, comparable encoding of the board contents:
// one packed bitboard per color. The side to move is implied by piece
// parity, so two identical layouts always share a key.
type PositionKey struct {
	Red    uint64
	Yellow uint64
}

// State is an immutable connect-four position. Play returns a fresh
// value and never mutates its receiver, so states can be shared freely
// between the tree, rollouts and callers.
type State struct {
	boards  [2]uint64 // discs by color: index 0 red, 1 yellow
	heights [Cols]uint8
	mover   Disc
	placed  uint8
}

// NewState returns the empty starting position with red to move.
func NewState() State {
	return State{mover: Red}
}

// FromGrid builds a state from a row-major snapshot, deriving the mover
// from piece parity: red opens, so red is to move exactly when both
// colors have placed the same number of discs.
func FromGrid(g Grid) State {
	var s State
	for c := 0; c < Cols; c++ {
		for r := Rows - 1; r >= 0; r-- {
			d := g[r][c]
			if d == None {
				continue
			}
			bit := uint64(1) << (uint(c)*colStride + uint(s.heights[c]))
			s.boards[d-1] |= bit
			s.heights[c]++
			s.placed++
		}
	}
	reds := bits.OnesCount64(s.boards[Red-1])
	yellows := bits.OnesCount64(s.boards[Yellow-1])
	if reds == yellows {
		s.mover = Red
	} else {
		s.mover = Yellow
	}
	return s
}

// WithMover returns the same layout with the turn handed to d, used to
// pose hypothetical positions such as "what if the opponent moved here"
// without copying anything beyond the value itself.
func (s State) WithMover(d Disc) State {
	s.mover = d
	return s
}

// Mover returns the player whose turn it is.
func (s State) Mover() Disc {
	return s.mover
}

// Key returns the canonical position key for indexing learned values.
func (s State) Key() PositionKey {
	return PositionKey{Red: s.boards[Red-1], Yellow: s.boards[Yellow-1]}
}

// LegalMoves returns the columns with room, in ascending order.
func (s State) LegalMoves() []int {
	moves := make([]int, 0, Cols)
	for c := 0; c < Cols; c++ {
		if s.heights[c] < Rows {
			moves = append(moves, c)
		}
	}
	return moves
}

// Legal reports whether a drop into column is currently playable.
func (s State) Legal(column int) bool {
	return column >= 0 && column < Cols && s.heights[column] < Rows
}

// Play drops the mover's disc into column and returns the resulting
// position with the turn switched. The receiver is left untouched.
func (s State) Play(column int) (State, error) {
	if !s.Legal(column) {
		return s, IllegalMoveError{Column: column}
	}
	next := s
	bit := uint64(1) << (uint(column)*colStride + uint(next.heights[column]))
	next.boards[next.mover-1] |= bit
	next.heights[column]++
	next.placed++
	next.mover = next.mover.Opponent()
	return next, nil
}

// Winner returns the color with four in a row, or None for a draw or an
// unfinished game. Use IsTerminal to tell those two apart.
func (s State) Winner() Disc {
	if connects(s.boards[Red-1]) {
		return Red
	}
	if connects(s.boards[Yellow-1]) {
		return Yellow
	}
	return None
}

// IsTerminal reports whether the game is over, by win or by a full board.
func (s State) IsTerminal() bool {
	return s.placed == Rows*Cols || s.Winner() != None
}

// Grid materializes the position as a row-major snapshot (row 0 on top).
func (s State) Grid() Grid {
	var g Grid
	for c := 0; c < Cols; c++ {
		for h := 0; h < int(s.heights[c]); h++ {
			bit := uint64(1) << (uint(c)*colStride + uint(h))
			d := Yellow
			if s.boards[Red-1]&bit != 0 {
				d = Red
			}
			g[Rows-1-h][c] = d
		}
	}
	return g
}

func (s State) String() string {
	g := s.Grid()
	var b strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			switch g[r][c] {
			case Red:
				b.WriteByte('R')
			case Yellow:
				b.WriteByte('Y')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// connects reports four aligned discs on one color's bitboard. The shift
// distances cover vertical, horizontal and both diagonals in the 7-bit
// column layout.
func connects(bb uint64) bool {
	for _, dir := range [4]uint{1, colStride - 1, colStride, colStride + 1} {
		m := bb & (bb >> dir)
		if m&(m>>(2*dir)) != 0 {
			return true
		}
	}
	return false
}
