package engine

import "checkers/internal/server/board"

// Status is the outcome of a position
type Status int

const (
	Ongoing Status = iota
	LightWins
	DarkWins
)

func (s Status) String() string {
	switch s {
	case LightWins:
		return "light wins"
	case DarkWins:
		return "dark wins"
	default:
		return "ongoing"
	}
}

// Winner returns the winning color, NoColor while the game is ongoing
func (s Status) Winner() board.Color {
	switch s {
	case LightWins:
		return board.Light
	case DarkWins:
		return board.Dark
	default:
		return board.NoColor
	}
}

// Status reports a win for the side not to move when the side to move has no
// pieces left or none of its pieces can move
func (e *Engine) Status(b board.Board) Status {
	turn := b.Turn()
	if turn == board.NoColor {
		return Ongoing
	}
	if len(e.Movable(b)) > 0 {
		return Ongoing
	}
	if turn == board.Light {
		return DarkWins
	}
	return LightWins
}
