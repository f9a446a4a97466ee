package game

import "fmt"

// Board dimensions for standard connect-four.
const (
	Rows = 6
	Cols = 7
)

// Disc identifies the contents of one cell. Red always moves first.
type Disc int8

const (
	None   Disc = 0
	Red    Disc = 1
	Yellow Disc = 2
)

func (d Disc) Opponent() Disc {
	switch d {
	case Red:
		return Yellow
	case Yellow:
		return Red
	}
	return None
}

func (d Disc) String() string {
	switch d {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	}
	return "none"
}

// Grid is a row-major snapshot of the board with row 0 at the top,
// the shape drivers and UIs exchange with the engine.
type Grid [Rows][Cols]Disc

// IllegalMoveError reports a drop into a full or out-of-range column.
type IllegalMoveError struct {
	Column int
}

func (e IllegalMoveError) Error() string {
	if e.Column < 0 || e.Column >= Cols {
		return fmt.Sprintf("illegal move: column %d out of range", e.Column)
	}
	return fmt.Sprintf("illegal move: column %d is full", e.Column)
}
