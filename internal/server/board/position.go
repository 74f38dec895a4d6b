package board

import (
	"fmt"
	"strings"
)

// StartingPosition is the position string of New()
const StartingPosition = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/w1w1w1w1/1w1w1w1w/w1w1w1w1 b"

// ParsePosition reads a position string: Size rows from row 0 separated by
// '/', each row using w/b for men, W/B for kings, '.' or a digit run for empty
// squares, then a space and the side to move (w or b).
func ParsePosition(s string) (Board, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Board{}, fmt.Errorf("invalid position: expected 2 parts, got %d", len(parts))
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != Size {
		return Board{}, fmt.Errorf("invalid position: expected %d rows, got %d", Size, len(rows))
	}

	var b Board
	for y, row := range rows {
		x := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch >= '1' && ch <= '0'+Size:
				x += int(ch - '0')
			case ch == '.':
				x++
			default:
				piece, ok := pieceFromSymbol(ch)
				if !ok {
					return Board{}, fmt.Errorf("invalid position: unknown symbol %q in row %d", ch, y)
				}
				if x >= Size {
					return Board{}, fmt.Errorf("invalid position: too many squares in row %d", y)
				}
				p := Point{X: x, Y: y}
				if !p.Playable() {
					return Board{}, fmt.Errorf("invalid position: piece on light square %s", p)
				}
				if !piece.IsKing() && y == piece.Color().PromotionRow() {
					return Board{}, fmt.Errorf("invalid position: uncrowned %s on %s", piece, p)
				}
				b.cells[y][x] = Occupied(piece)
				x++
			}
		}
		if x != Size {
			return Board{}, fmt.Errorf("invalid position: row %d has %d squares", y, x)
		}
	}

	if len(parts[1]) != 1 {
		return Board{}, fmt.Errorf("invalid position: turn must be 'w' or 'b'")
	}
	switch parts[1][0] {
	case 'w':
		b.turn = Light
	case 'b':
		b.turn = Dark
	default:
		return Board{}, fmt.Errorf("invalid position: turn must be 'w' or 'b'")
	}

	return b, nil
}

// Position encodes the pieces and the side to move. Markers are written as
// empty squares, so a position string never carries query scratch state.
func (b Board) Position() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		run := 0
		for x := 0; x < Size; x++ {
			piece := b.cells[y][x].Piece()
			if piece == NoPiece {
				run++
				continue
			}
			if run > 0 {
				sb.WriteByte(byte('0' + run))
				run = 0
			}
			sb.WriteByte(piece.Symbol())
		}
		if run > 0 {
			sb.WriteByte(byte('0' + run))
		}
	}
	sb.WriteByte(' ')
	sb.WriteByte(b.turn.Code())
	return sb.String()
}

// ToASCII renders the board with file and rank labels. Move markers show as
// '*', capture markers as 'x'.
func (b Board) ToASCII() string {
	var sb strings.Builder
	files := make([]string, Size)
	for x := range files {
		files[x] = string(rune('a' + x))
	}
	header := "  " + strings.Join(files, " ") + "\n"

	sb.WriteString(header)
	for y := 0; y < Size; y++ {
		sb.WriteString(fmt.Sprintf("%d ", Size-y))
		for x := 0; x < Size; x++ {
			sb.WriteByte(b.cells[y][x].Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf(" %d\n", Size-y))
	}
	sb.WriteString(strings.TrimSuffix(header, "\n"))

	return sb.String()
}

// Rows returns one symbol string per row, markers included, for clients that
// draw their own board
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for y := 0; y < Size; y++ {
		row := make([]byte, Size)
		for x := 0; x < Size; x++ {
			row[x] = b.cells[y][x].Symbol()
		}
		rows[y] = string(row)
	}
	return rows
}
