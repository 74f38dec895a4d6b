package board

// Board is the grid plus the side to move. It is a plain value: assignment
// copies it, so every engine operation works on its own copy.
type Board struct {
	cells [Size][Size]Cell
	turn  Color
}

// Square is one (coordinate, cell) pair from a board scan
type Square struct {
	Point Point
	Cell  Cell
}

// New returns the opening position: twelve men per side on the dark squares
// of their three home rows, Dark to move
func New() Board {
	b := Board{turn: Dark}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			p := Point{X: x, Y: y}
			if !p.Playable() {
				continue
			}
			switch {
			case y < 3:
				b.cells[y][x] = Occupied(DarkMan)
			case y >= Size-3:
				b.cells[y][x] = Occupied(LightMan)
			}
		}
	}
	return b
}

// Blank returns an empty board with the given side to move
func Blank(turn Color) Board {
	return Board{turn: turn}
}

func (b Board) Turn() Color {
	return b.turn
}

func (b *Board) SetTurn(c Color) {
	b.turn = c
}

// AdvanceTurn flips the side to move
func (b *Board) AdvanceTurn() {
	b.turn = b.turn.Next()
}

// Get returns the cell at p
func (b Board) Get(p Point) (Cell, error) {
	if !p.Valid() {
		return Empty, ErrOutOfBounds
	}
	return b.cells[p.Y][p.X], nil
}

// Set writes c at p
func (b *Board) Set(p Point, c Cell) error {
	if !p.Valid() {
		return ErrOutOfBounds
	}
	b.cells[p.Y][p.X] = c
	return nil
}

// At is the unchecked read for points already validated by the caller
func (b Board) At(p Point) Cell {
	return b.cells[p.Y][p.X]
}

// PieceAt returns the occupant of p, NoPiece when empty or off the board
func (b Board) PieceAt(p Point) Piece {
	if !p.Valid() {
		return NoPiece
	}
	return b.cells[p.Y][p.X].Piece()
}

// ClearMarkers returns a copy with every move and capture marker reset to Empty
func (b Board) ClearMarkers() Board {
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].IsMarker() {
				b.cells[y][x] = Empty
			}
		}
	}
	return b
}

// HasMarkers reports whether any square carries a marker
func (b Board) HasMarkers() bool {
	for _, sq := range b.Squares() {
		if sq.Cell.IsMarker() {
			return true
		}
	}
	return false
}

// CheckPromotion crowns a man standing on its promotion row. Kings and empty
// squares are left alone. Returns true if a promotion happened.
func (b *Board) CheckPromotion(p Point) bool {
	if !p.Valid() {
		return false
	}
	piece := b.cells[p.Y][p.X].Piece()
	if piece == NoPiece || piece.IsKing() {
		return false
	}
	if p.Y != piece.Color().PromotionRow() {
		return false
	}
	b.cells[p.Y][p.X] = Occupied(piece.Promote())
	return true
}

// Squares lists every square in row-major order
func (b Board) Squares() []Square {
	squares := make([]Square, 0, Size*Size)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			squares = append(squares, Square{Point: Point{X: x, Y: y}, Cell: b.cells[y][x]})
		}
	}
	return squares
}

// Pieces lists the coordinates of every piece of color c in row-major order
func (b Board) Pieces(c Color) []Point {
	if c == NoColor {
		return nil
	}
	var points []Point
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.cells[y][x].Piece().Color() == c {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// Count returns the number of pieces of color c
func (b Board) Count(c Color) int {
	return len(b.Pieces(c))
}
