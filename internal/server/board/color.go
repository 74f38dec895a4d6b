package board

// Color identifies a side, and doubles as the turn indicator on a Board
type Color uint8

const (
	NoColor Color = iota
	Light
	Dark
)

// Next alternates the side to move
func (c Color) Next() Color {
	switch c {
	case Light:
		return Dark
	case Dark:
		return Light
	default:
		return NoColor
	}
}

// PromotionRow is the farthest row from the color's home side
func (c Color) PromotionRow() int {
	if c == Light {
		return 0
	}
	return Size - 1
}

// Forward is the row direction men of this color advance in
func (c Color) Forward() int {
	if c == Light {
		return -1
	}
	return 1
}

func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "-"
	}
}

// Code is the single-letter form used in position strings
func (c Color) Code() byte {
	switch c {
	case Light:
		return 'w'
	case Dark:
		return 'b'
	default:
		return '-'
	}
}

// ParseColor accepts "light"/"dark" or the single-letter codes "w"/"b"
func ParseColor(s string) (Color, bool) {
	switch s {
	case "light", "w", "white":
		return Light, true
	case "dark", "b", "black":
		return Dark, true
	default:
		return NoColor, false
	}
}
