package board

// Cell is the content of one square. Markers are scratch state produced by
// legal-move queries and never part of a stored position.
type Cell uint8

const (
	Empty Cell = iota
	MoveMarker
	CaptureMarker

	occupiedBase
)

// Occupied wraps a piece into a cell
func Occupied(p Piece) Cell {
	if p == NoPiece {
		return Empty
	}
	return occupiedBase + Cell(p) - 1
}

// Piece returns the occupant, NoPiece for empty and marked squares
func (c Cell) Piece() Piece {
	if c < occupiedBase {
		return NoPiece
	}
	return Piece(c-occupiedBase) + 1
}

func (c Cell) IsEmpty() bool {
	return c == Empty
}

func (c Cell) IsOccupied() bool {
	return c >= occupiedBase
}

// IsMarker reports a move or capture highlight
func (c Cell) IsMarker() bool {
	return c == MoveMarker || c == CaptureMarker
}

// IsVacant is true for squares a piece may land on, markers included
func (c Cell) IsVacant() bool {
	return !c.IsOccupied()
}

// Symbol is the one-byte rendering: piece symbols, '*' for a move marker,
// 'x' for a capture marker and '.' for an empty square
func (c Cell) Symbol() byte {
	switch {
	case c == MoveMarker:
		return '*'
	case c == CaptureMarker:
		return 'x'
	case c.IsOccupied():
		return c.Piece().Symbol()
	default:
		return '.'
	}
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case MoveMarker:
		return "move"
	case CaptureMarker:
		return "capture"
	default:
		return c.Piece().String()
	}
}
