package board

import "fmt"

// Player identifies the occupant of a cell or square.
type Player int8

const (
	Empty Player = iota // unoccupied and playable
	X
	O
	Dead // unoccupied but unplayable: inside a resolved square, or a drawn square
)

func (p Player) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	case Dead:
		return "DEAD"
	default:
		return "-"
	}
}

// Opponent returns the other player. Only meaningful for X and O.
func (p Player) Opponent() Player {
	if p == X {
		return O
	}
	return X
}

// Square is a square of the board: level 0 is a single cell, level k is a
// 3^k x 3^k region whose top-left cell index is TopLeft.
type Square struct {
	TopLeft int
	Level   int
}

func (s Square) String() string {
	return fmt.Sprintf("Square{top_left=%d, level=%d}", s.TopLeft, s.Level)
}

// noCapture is the sentinel Turn.Capture value meaning "this move captured
// no sub-board", matching the 81 sentinel used by the reference board.rs
// implementation (81 is never a valid sub-board index, which range 0..8).
const noCapture = 81

// Turn is the minimum information needed to perfectly undo a move: the cell
// played, the sub-board it captured (or noCapture), and the next_legal
// square that held immediately before the move.
type Turn struct {
	Cell        int
	Capture     int
	PriorBounds Square
}
