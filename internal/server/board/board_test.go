package board

import (
	"errors"
	"testing"
)

func TestNewBoardPlacement(t *testing.T) {
	b := New()

	if b.Turn() != Dark {
		t.Fatalf("expected dark to move first, got %s", b.Turn())
	}

	counts := map[Color]int{}
	for _, sq := range b.Squares() {
		piece := sq.Cell.Piece()
		if piece == NoPiece {
			continue
		}
		if !sq.Point.Playable() {
			t.Fatalf("piece on light square %s", sq.Point)
		}
		if piece.IsKing() {
			t.Fatalf("unexpected king at %s", sq.Point)
		}
		switch piece.Color() {
		case Dark:
			if sq.Point.Y > 2 {
				t.Fatalf("dark man outside home rows at %s", sq.Point)
			}
		case Light:
			if sq.Point.Y < Size-3 {
				t.Fatalf("light man outside home rows at %s", sq.Point)
			}
		}
		counts[piece.Color()]++
	}

	if counts[Light] != 12 || counts[Dark] != 12 {
		t.Fatalf("expected 12 pieces per side, got light=%d dark=%d", counts[Light], counts[Dark])
	}
}

func TestGetSetBounds(t *testing.T) {
	b := Blank(Light)
	outside := []Point{{X: -1, Y: 0}, {X: 0, Y: Size}, {X: Size, Y: 3}, {X: 2, Y: -4}}

	for _, p := range outside {
		if _, err := b.Get(p); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%v): expected ErrOutOfBounds, got %v", p, err)
		}
		if err := b.Set(p, Occupied(LightMan)); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%v): expected ErrOutOfBounds, got %v", p, err)
		}
	}

	p := Point{X: 3, Y: 4}
	if err := b.Set(p, Occupied(DarkKing)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c, err := b.Get(p)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Piece() != DarkKing {
		t.Fatalf("expected dark king, got %s", c)
	}
}

func TestClearMarkersReturnsCopy(t *testing.T) {
	b := New()
	b.Set(Point{X: 0, Y: 3}, MoveMarker)
	b.Set(Point{X: 2, Y: 3}, CaptureMarker)

	cleared := b.ClearMarkers()

	if cleared.HasMarkers() {
		t.Fatalf("expected no markers after ClearMarkers")
	}
	if !b.HasMarkers() {
		t.Fatalf("ClearMarkers mutated its receiver")
	}
	if cleared.Position() != StartingPosition {
		t.Fatalf("pieces changed by ClearMarkers: %s", cleared.Position())
	}
}

func TestCheckPromotion(t *testing.T) {
	tests := []struct {
		name     string
		at       Point
		piece    Piece
		want     Piece
		promoted bool
	}{
		{"light man on row 0", Point{X: 1, Y: 0}, LightMan, LightKing, true},
		{"dark man on last row", Point{X: 0, Y: Size - 1}, DarkMan, DarkKing, true},
		{"light man mid board", Point{X: 2, Y: 3}, LightMan, LightMan, false},
		{"dark man on own home row", Point{X: 1, Y: 0}, DarkMan, DarkMan, false},
		{"king stays king", Point{X: 1, Y: 0}, LightKing, LightKing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Blank(Light)
			b.Set(tt.at, Occupied(tt.piece))

			if got := b.CheckPromotion(tt.at); got != tt.promoted {
				t.Fatalf("CheckPromotion returned %v, want %v", got, tt.promoted)
			}
			if got := b.PieceAt(tt.at); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			// Idempotent
			if b.CheckPromotion(tt.at) {
				t.Fatalf("second CheckPromotion promoted again")
			}
			if got := b.PieceAt(tt.at); got != tt.want {
				t.Fatalf("second CheckPromotion changed piece to %s", got)
			}
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	b := New()
	if got := b.Position(); got != StartingPosition {
		t.Fatalf("opening position mismatch:\n got %s\nwant %s", got, StartingPosition)
	}

	parsed, err := ParsePosition("8/8/3B4/8/1w6/8/8/8 w")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if parsed.Turn() != Light {
		t.Fatalf("expected light to move")
	}
	if parsed.PieceAt(Point{X: 3, Y: 2}) != DarkKing || parsed.PieceAt(Point{X: 1, Y: 4}) != LightMan {
		t.Fatalf("pieces not placed where expected:\n%s", parsed.ToASCII())
	}
	if parsed.Count(Light) != 1 || parsed.Count(Dark) != 1 {
		t.Fatalf("unexpected piece counts")
	}
}

func TestParsePositionRejects(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 w",
		"8/8/8/8/8/8/8/8 x",
		"8/8/8/8/8/8/8/9 w",
		"w7/8/8/8/8/8/8/8 b",  // light square
		"1w6/8/8/8/8/8/8/8 b", // uncrowned on promotion row
		"8/8/8/8/8/8/8/1q6 w",
	}
	for _, s := range bad {
		if _, err := ParsePosition(s); err == nil {
			t.Errorf("ParsePosition(%q): expected error", s)
		}
	}
}

func TestPositionOmitsMarkers(t *testing.T) {
	b := Blank(Dark)
	b.Set(Point{X: 1, Y: 2}, Occupied(DarkMan))
	b.Set(Point{X: 0, Y: 3}, MoveMarker)
	b.Set(Point{X: 3, Y: 4}, CaptureMarker)

	if got, want := b.Position(), "8/8/1b6/8/8/8/8/8 b"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		name string
		p    Point
	}{
		{"a1", Point{X: 0, Y: 7}},
		{"h8", Point{X: 7, Y: 0}},
		{"c3", Point{X: 2, Y: 5}},
	}
	for _, tt := range tests {
		p, err := ParseSquare(tt.name)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", tt.name, err)
		}
		if p != tt.p {
			t.Fatalf("ParseSquare(%q) = %v, want %v", tt.name, p, tt.p)
		}
		if p.String() != tt.name {
			t.Fatalf("String() = %s, want %s", p.String(), tt.name)
		}
	}

	for _, s := range []string{"i1", "a9", "a0", "c", "c33"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q): expected error", s)
		}
	}
}

func TestRouteIsImmutable(t *testing.T) {
	start := Point{X: 2, Y: 5}
	r := NewRoute(start)
	a := r.Append(Point{X: 4, Y: 3})
	b := a.Append(Point{X: 6, Y: 1})
	c := a.Append(Point{X: 2, Y: 1})

	if r.Len() != 1 || a.Len() != 2 || b.Len() != 3 || c.Len() != 3 {
		t.Fatalf("unexpected lengths %d %d %d %d", r.Len(), a.Len(), b.Len(), c.Len())
	}
	if b.Last() == c.Last() {
		t.Fatalf("branches share backing storage")
	}
	if b.First() != start || !b.Contains(Point{X: 4, Y: 3}) || b.Contains(Point{X: 2, Y: 1}) {
		t.Fatalf("unexpected route contents %s", b)
	}
	tail := b.Tail()
	if len(tail) != 2 || tail[0] != (Point{X: 4, Y: 3}) {
		t.Fatalf("unexpected tail %v", tail)
	}
	if b.String() != "c3xe5xg7" {
		t.Fatalf("unexpected notation %s", b)
	}
}
