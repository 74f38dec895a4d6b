package board

// Piece is a checker: a man or a king of one color
type Piece uint8

const (
	NoPiece Piece = iota
	LightMan
	DarkMan
	LightKing
	DarkKing
)

// Man returns the unpromoted piece of color c
func Man(c Color) Piece {
	if c == Light {
		return LightMan
	}
	return DarkMan
}

// King returns the promoted piece of color c
func King(c Color) Piece {
	if c == Light {
		return LightKing
	}
	return DarkKing
}

func (p Piece) Color() Color {
	switch p {
	case LightMan, LightKing:
		return Light
	case DarkMan, DarkKing:
		return Dark
	default:
		return NoColor
	}
}

func (p Piece) IsKing() bool {
	return p == LightKing || p == DarkKing
}

// Promote returns the king of the same color; kings are returned unchanged
func (p Piece) Promote() Piece {
	switch p {
	case LightMan:
		return LightKing
	case DarkMan:
		return DarkKing
	default:
		return p
	}
}

// IsEnemy holds iff both are pieces and their colors differ
func (p Piece) IsEnemy(o Piece) bool {
	return p != NoPiece && o != NoPiece && p.Color() != o.Color()
}

// Symbol is the position-string letter: w/b for men, W/B for kings
func (p Piece) Symbol() byte {
	switch p {
	case LightMan:
		return 'w'
	case DarkMan:
		return 'b'
	case LightKing:
		return 'W'
	case DarkKing:
		return 'B'
	default:
		return '.'
	}
}

func pieceFromSymbol(ch byte) (Piece, bool) {
	switch ch {
	case 'w':
		return LightMan, true
	case 'b':
		return DarkMan, true
	case 'W':
		return LightKing, true
	case 'B':
		return DarkKing, true
	default:
		return NoPiece, false
	}
}

func (p Piece) String() string {
	switch p {
	case LightMan:
		return "light man"
	case DarkMan:
		return "dark man"
	case LightKing:
		return "light king"
	case DarkKing:
		return "dark king"
	default:
		return "none"
	}
}
