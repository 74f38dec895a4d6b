package board

import (
	"errors"
	"fmt"
)

// Size is the side length of the standard board
const Size = 8

// ErrOutOfBounds is returned for coordinates outside the board
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Point is a grid coordinate, X is the column and Y the row (row 0 is Dark's home side)
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Diagonals lists the four unit diagonal steps
var Diagonals = [4]Point{
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: 1},
}

// Valid reports whether p lies on the board. Callers check before indexing.
func (p Point) Valid() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Sign reduces p to a unit step, each component in {-1, 0, 1}
func (p Point) Sign() Point {
	return Point{X: sign(p.X), Y: sign(p.Y)}
}

// Playable reports whether p is a dark square, the only squares pieces use
func (p Point) Playable() bool {
	return (p.X+p.Y)%2 != 0
}

// String renders the algebraic name: file a-h from X, rank 1-8 counted from Light's side
func (p Point) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, Size-p.Y)
}

// ParseSquare converts an algebraic name such as "c3" to a Point
func ParseSquare(s string) (Point, error) {
	if len(s) != 2 {
		return Point{}, fmt.Errorf("invalid square %q: expected file and rank", s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'Z' {
		file += 'a' - 'A'
	}
	if file < 'a' || file >= 'a'+Size || rank < '1' || rank >= '1'+Size {
		return Point{}, fmt.Errorf("invalid square %q: %w", s, ErrOutOfBounds)
	}
	return Point{X: int(file - 'a'), Y: Size - int(rank-'0')}, nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
