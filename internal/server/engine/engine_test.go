package engine

import (
	"errors"
	"testing"

	"checkers/internal/server/board"
)

func pt(x, y int) board.Point {
	return board.Point{X: x, Y: y}
}

func setup(t *testing.T, turn board.Color, pieces map[board.Point]board.Piece) board.Board {
	t.Helper()
	b := board.Blank(turn)
	for p, piece := range pieces {
		if err := b.Set(p, board.Occupied(piece)); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return b
}

// marked collects the squares carrying the given marker
func marked(b board.Board, c board.Cell) map[board.Point]bool {
	out := make(map[board.Point]bool)
	for _, sq := range b.Squares() {
		if sq.Cell == c {
			out[sq.Point] = true
		}
	}
	return out
}

func samePieces(t *testing.T, want, got board.Board) {
	t.Helper()
	if want.ClearMarkers().Position() != got.ClearMarkers().Position() {
		t.Fatalf("piece placement changed:\nwant %s\n got %s", want.Position(), got.Position())
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if b.Count(board.Light) != 12 || b.Count(board.Dark) != 12 {
		t.Fatalf("expected 12 pieces per side")
	}
	for _, sq := range b.Squares() {
		if sq.Cell.IsOccupied() && !sq.Point.Playable() {
			t.Fatalf("piece on light square %s", sq.Point)
		}
	}
	if b.Turn() != board.Dark {
		t.Fatalf("expected dark to move first")
	}
}

func TestLegalMovesSimpleSteps(t *testing.T) {
	e := New(DefaultRules())

	tests := []struct {
		name   string
		turn   board.Color
		pieces map[board.Point]board.Piece
		origin board.Point
		want   []board.Point
	}{
		{
			name:   "dark man open board",
			turn:   board.Dark,
			pieces: map[board.Point]board.Piece{pt(3, 2): board.DarkMan},
			origin: pt(3, 2),
			want:   []board.Point{pt(2, 3), pt(4, 3)},
		},
		{
			name:   "light man open board",
			turn:   board.Light,
			pieces: map[board.Point]board.Piece{pt(4, 5): board.LightMan},
			origin: pt(4, 5),
			want:   []board.Point{pt(3, 4), pt(5, 4)},
		},
		{
			name:   "man on the edge",
			turn:   board.Dark,
			pieces: map[board.Point]board.Piece{pt(0, 1): board.DarkMan},
			origin: pt(0, 1),
			want:   []board.Point{pt(1, 2)},
		},
		{
			name: "friendly piece blocks one side",
			turn: board.Dark,
			pieces: map[board.Point]board.Piece{
				pt(3, 2): board.DarkMan,
				pt(4, 3): board.DarkMan,
			},
			origin: pt(3, 2),
			want:   []board.Point{pt(2, 3)},
		},
		{
			name: "fully blocked",
			turn: board.Dark,
			pieces: map[board.Point]board.Piece{
				pt(3, 2): board.DarkMan,
				pt(2, 3): board.DarkMan,
				pt(4, 3): board.DarkMan,
			},
			origin: pt(3, 2),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t, tt.turn, tt.pieces)
			got, err := e.LegalMoves(b, tt.origin)
			if err != nil {
				t.Fatalf("LegalMoves: %v", err)
			}
			samePieces(t, b, got)

			moves := marked(got, board.MoveMarker)
			if len(moves) != len(tt.want) {
				t.Fatalf("expected %d move markers, got %d\n%s", len(tt.want), len(moves), got.ToASCII())
			}
			for _, p := range tt.want {
				if !moves[p] {
					t.Fatalf("missing move marker at %s\n%s", p, got.ToASCII())
				}
			}
			if caps := marked(got, board.CaptureMarker); len(caps) != 0 {
				t.Fatalf("unexpected capture markers %v", caps)
			}
		})
	}
}

func TestKingSlides(t *testing.T) {
	e := New(DefaultRules())
	b := setup(t, board.Dark, map[board.Point]board.Piece{pt(3, 4): board.DarkKing})

	m, err := e.Moves(b, pt(3, 4))
	if err != nil {
		t.Fatalf("Moves: %v", err)
	}
	if len(m.Steps) != 13 {
		t.Fatalf("expected 13 king destinations, got %d: %v", len(m.Steps), m.Steps)
	}
	if len(m.Captures) != 0 {
		t.Fatalf("unexpected captures %v", m.Captures)
	}
}

func TestSingleCapture(t *testing.T) {
	pieces := map[board.Point]board.Piece{
		pt(3, 2): board.DarkMan,
		pt(4, 3): board.LightMan,
	}

	t.Run("mandatory", func(t *testing.T) {
		e := New(DefaultRules())
		b := setup(t, board.Dark, pieces)
		got, err := e.LegalMoves(b, pt(3, 2))
		if err != nil {
			t.Fatalf("LegalMoves: %v", err)
		}
		if got.At(pt(5, 4)) != board.CaptureMarker {
			t.Fatalf("expected capture marker behind the enemy\n%s", got.ToASCII())
		}
		if moves := marked(got, board.MoveMarker); len(moves) != 0 {
			t.Fatalf("simple moves offered while a capture exists: %v", moves)
		}
		samePieces(t, b, got)
	})

	t.Run("optional", func(t *testing.T) {
		e := New(Rules{MandatoryCapture: false})
		b := setup(t, board.Dark, pieces)
		got, err := e.LegalMoves(b, pt(3, 2))
		if err != nil {
			t.Fatalf("LegalMoves: %v", err)
		}
		if got.At(pt(5, 4)) != board.CaptureMarker || got.At(pt(2, 3)) != board.MoveMarker {
			t.Fatalf("expected both capture and step\n%s", got.ToASCII())
		}
	})

	t.Run("man captures backwards", func(t *testing.T) {
		e := New(DefaultRules())
		b := setup(t, board.Dark, map[board.Point]board.Piece{
			pt(3, 4): board.DarkMan,
			pt(2, 3): board.LightMan,
		})
		routes := e.Captures(b, pt(3, 4))
		if len(routes) != 1 || routes[0].Last() != pt(1, 2) {
			t.Fatalf("expected one backward capture to b6, got %v", routes)
		}
	})

	t.Run("landing off board", func(t *testing.T) {
		e := New(DefaultRules())
		b := setup(t, board.Dark, map[board.Point]board.Piece{
			pt(6, 5): board.DarkMan,
			pt(7, 6): board.LightMan,
		})
		if routes := e.Captures(b, pt(6, 5)); len(routes) != 0 {
			t.Fatalf("expected no capture across the edge, got %v", routes)
		}
	})
}

func TestCaptureChain(t *testing.T) {
	e := New(DefaultRules())
	start, mid, end := pt(1, 2), pt(3, 4), pt(5, 6)
	b := setup(t, board.Dark, map[board.Point]board.Piece{
		start:    board.DarkMan,
		pt(2, 3): board.LightMan,
		pt(4, 5): board.LightMan,
	})

	routes := e.Captures(b, start)
	if len(routes) != 1 {
		t.Fatalf("expected one maximal route, got %v", routes)
	}
	r := routes[0]
	if r.Len() != 3 || r.First() != start || r.Last() != end || !r.Contains(mid) {
		t.Fatalf("unexpected route %s", r)
	}

	marks, err := e.LegalMoves(b, start)
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if marks.At(mid) != board.CaptureMarker || marks.At(end) != board.CaptureMarker {
		t.Fatalf("expected both landings marked\n%s", marks.ToASCII())
	}

	// Stale markers on the input must not matter
	next, move, err := e.ApplyMove(marks, start, end)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if next.Count(board.Light) != 0 {
		t.Fatalf("expected both enemies removed\n%s", next.ToASCII())
	}
	if next.PieceAt(end) != board.DarkMan || next.PieceAt(start) != board.NoPiece {
		t.Fatalf("mover not relocated\n%s", next.ToASCII())
	}
	if next.Turn() != board.Light {
		t.Fatalf("expected turn to advance once, got %s", next.Turn())
	}
	if next.HasMarkers() {
		t.Fatalf("markers left after move")
	}
	if len(move.Captured) != 2 || move.String() != "b6xd4xf2" {
		t.Fatalf("unexpected move record %+v (%s)", move, move)
	}

	// An intermediate landing is not a legal stop
	if _, _, err := e.ApplyMove(b, start, mid); !errors.Is(err, ErrIllegalDestination) {
		t.Fatalf("expected ErrIllegalDestination for mid-chain stop, got %v", err)
	}
}

func TestBranchingChains(t *testing.T) {
	e := New(DefaultRules())
	// After the first jump the man can continue left or right
	b := setup(t, board.Dark, map[board.Point]board.Piece{
		pt(3, 0): board.DarkMan,
		pt(4, 1): board.LightMan,
		pt(4, 3): board.LightMan,
		pt(6, 3): board.LightMan,
	})

	routes := e.Captures(b, pt(3, 0))
	if len(routes) != 2 {
		t.Fatalf("expected two routes, got %v", routes)
	}
	ends := map[board.Point]bool{}
	for _, r := range routes {
		if r.Len() != 3 {
			t.Fatalf("expected two jumps per route, got %s", r)
		}
		ends[r.Last()] = true
	}
	if !ends[pt(3, 4)] || !ends[pt(7, 4)] {
		t.Fatalf("unexpected route ends %v", routes)
	}
}

func TestPromotion(t *testing.T) {
	e := New(DefaultRules())

	tests := []struct {
		name     string
		turn     board.Color
		pieces   map[board.Point]board.Piece
		from, to board.Point
		want     board.Piece
		promoted bool
	}{
		{
			name:     "light man steps onto row 0",
			turn:     board.Light,
			pieces:   map[board.Point]board.Piece{pt(2, 1): board.LightMan},
			from:     pt(2, 1),
			to:       pt(1, 0),
			want:     board.LightKing,
			promoted: true,
		},
		{
			name:     "dark man steps onto last row",
			turn:     board.Dark,
			pieces:   map[board.Point]board.Piece{pt(4, 6): board.DarkMan},
			from:     pt(4, 6),
			to:       pt(5, 7),
			want:     board.DarkKing,
			promoted: true,
		},
		{
			name: "capture ends on promotion row",
			turn: board.Light,
			pieces: map[board.Point]board.Piece{
				pt(3, 2): board.LightMan,
				pt(2, 1): board.DarkMan,
			},
			from:     pt(3, 2),
			to:       pt(1, 0),
			want:     board.LightKing,
			promoted: true,
		},
		{
			name:     "king stays king",
			turn:     board.Light,
			pieces:   map[board.Point]board.Piece{pt(2, 1): board.LightKing},
			from:     pt(2, 1),
			to:       pt(1, 0),
			want:     board.LightKing,
			promoted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t, tt.turn, tt.pieces)
			next, move, err := e.ApplyMove(b, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ApplyMove: %v", err)
			}
			if got := next.PieceAt(tt.to); got != tt.want {
				t.Fatalf("expected %s at %s, got %s", tt.want, tt.to, got)
			}
			if move.Promoted != tt.promoted {
				t.Fatalf("Promoted = %v, want %v", move.Promoted, tt.promoted)
			}
			if next.CheckPromotion(tt.to) {
				t.Fatalf("promotion applied twice")
			}
		})
	}
}

func TestPromoteMidChain(t *testing.T) {
	pieces := map[board.Point]board.Piece{
		pt(2, 5): board.DarkMan,
		pt(3, 6): board.LightMan,
		pt(6, 5): board.LightMan,
	}

	t.Run("final landing only", func(t *testing.T) {
		e := New(DefaultRules())
		b := setup(t, board.Dark, pieces)
		routes := e.Captures(b, pt(2, 5))
		if len(routes) != 1 || routes[0].Last() != pt(4, 7) {
			t.Fatalf("expected chain to stop on the back row, got %v", routes)
		}
		next, move, err := e.ApplyMove(b, pt(2, 5), pt(4, 7))
		if err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
		if next.PieceAt(pt(4, 7)) != board.DarkKing || !move.Promoted {
			t.Fatalf("expected promotion at final landing\n%s", next.ToASCII())
		}
		if next.Count(board.Light) != 1 {
			t.Fatalf("expected one light piece left")
		}
	})

	t.Run("crowned mid chain", func(t *testing.T) {
		e := New(Rules{MandatoryCapture: true, PromoteMidChain: true})
		b := setup(t, board.Dark, pieces)
		routes := e.Captures(b, pt(2, 5))
		if len(routes) != 1 || routes[0].Last() != pt(7, 4) {
			t.Fatalf("expected chain to continue with king range, got %v", routes)
		}
		next, move, err := e.ApplyMove(b, pt(2, 5), pt(7, 4))
		if err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
		if next.PieceAt(pt(7, 4)) != board.DarkKing || !move.Promoted {
			t.Fatalf("expected king at the end of the chain\n%s", next.ToASCII())
		}
		if next.Count(board.Light) != 0 {
			t.Fatalf("expected both light pieces captured\n%s", next.ToASCII())
		}
	})
}

func TestKingCapture(t *testing.T) {
	e := New(DefaultRules())

	t.Run("every square beyond the enemy", func(t *testing.T) {
		b := setup(t, board.Dark, map[board.Point]board.Piece{
			pt(1, 6): board.DarkKing,
			pt(3, 4): board.LightMan,
			pt(6, 1): board.DarkMan,
		})
		got, err := e.LegalMoves(b, pt(1, 6))
		if err != nil {
			t.Fatalf("LegalMoves: %v", err)
		}
		caps := marked(got, board.CaptureMarker)
		if len(caps) != 2 || !caps[pt(4, 3)] || !caps[pt(5, 2)] {
			t.Fatalf("expected both landings behind the enemy marked, got %v\n%s", caps, got.ToASCII())
		}
		samePieces(t, b, got)

		for _, to := range []board.Point{pt(4, 3), pt(5, 2)} {
			next, _, err := e.ApplyMove(b, pt(1, 6), to)
			if err != nil {
				t.Fatalf("ApplyMove to %s: %v", to, err)
			}
			if next.Count(board.Light) != 0 || next.PieceAt(to) != board.DarkKing {
				t.Fatalf("capture to %s not executed\n%s", to, next.ToASCII())
			}
		}
	})

	t.Run("friendly piece blocks the ray", func(t *testing.T) {
		b := setup(t, board.Dark, map[board.Point]board.Piece{
			pt(1, 6): board.DarkKing,
			pt(2, 5): board.DarkMan,
			pt(3, 4): board.LightMan,
		})
		if routes := e.Captures(b, pt(1, 6)); len(routes) != 0 {
			t.Fatalf("expected blocked ray, got %v", routes)
		}
	})

	t.Run("two enemies in a row", func(t *testing.T) {
		b := setup(t, board.Dark, map[board.Point]board.Piece{
			pt(1, 6): board.DarkKing,
			pt(3, 4): board.LightMan,
			pt(4, 3): board.LightMan,
		})
		if routes := e.Captures(b, pt(1, 6)); len(routes) != 0 {
			t.Fatalf("expected no jump over two pieces, got %v", routes)
		}
	})
}

func TestMandatoryCapture(t *testing.T) {
	pieces := map[board.Point]board.Piece{
		pt(1, 2): board.DarkMan,
		pt(5, 2): board.DarkMan,
		pt(6, 3): board.LightMan,
	}

	e := New(DefaultRules())
	b := setup(t, board.Dark, pieces)

	got, err := e.LegalMoves(b, pt(1, 2))
	if !errors.Is(err, ErrCaptureRequired) {
		t.Fatalf("expected ErrCaptureRequired, got %v", err)
	}
	if got.HasMarkers() {
		t.Fatalf("no markers expected for a piece that must not move")
	}
	if _, _, err := e.ApplyMove(b, pt(1, 2), pt(0, 3)); !errors.Is(err, ErrCaptureRequired) {
		t.Fatalf("expected step to be refused, got %v", err)
	}
	if movable := e.Movable(b); len(movable) != 1 || movable[0] != pt(5, 2) {
		t.Fatalf("expected only the capturing piece to be movable, got %v", movable)
	}

	relaxed := New(Rules{})
	if _, _, err := relaxed.ApplyMove(b, pt(1, 2), pt(0, 3)); err != nil {
		t.Fatalf("step refused without mandatory capture: %v", err)
	}
}

func TestApplyMoveRejects(t *testing.T) {
	e := New(DefaultRules())
	start := NewBoard()

	tests := []struct {
		name     string
		from, to board.Point
		want     error
	}{
		{"origin off board", pt(-1, 2), pt(0, 3), board.ErrOutOfBounds},
		{"destination off board", pt(1, 2), pt(0, 8), board.ErrOutOfBounds},
		{"empty origin", pt(0, 3), pt(1, 4), ErrNoPieceAtOrigin},
		{"wrong side", pt(0, 5), pt(1, 4), ErrWrongTurn},
		{"not diagonal", pt(1, 2), pt(1, 3), ErrIllegalDestination},
		{"backwards", pt(1, 2), pt(0, 1), ErrIllegalDestination},
		{"two squares", pt(1, 2), pt(3, 4), ErrIllegalDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := e.ApplyMove(start, tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			samePieces(t, start, next)
			if next.Turn() != start.Turn() {
				t.Fatalf("turn changed on a rejected move")
			}
		})
	}
}

func TestLegalMovesOrigin(t *testing.T) {
	e := New(DefaultRules())
	b := NewBoard()
	b.Set(pt(0, 3), board.MoveMarker)

	tests := []struct {
		name   string
		origin board.Point
		want   error
	}{
		{"off board", pt(9, 9), board.ErrOutOfBounds},
		{"empty square", pt(0, 4), ErrNoPieceAtOrigin},
		{"marker square", pt(0, 3), ErrNoPieceAtOrigin},
		{"wrong side", pt(0, 5), ErrWrongTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.LegalMoves(b, tt.origin)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got.HasMarkers() {
				t.Fatalf("expected a cleared board\n%s", got.ToASCII())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	e := New(DefaultRules())

	tests := []struct {
		name   string
		turn   board.Color
		pieces map[board.Point]board.Piece
		want   Status
	}{
		{
			name:   "no light pieces",
			turn:   board.Light,
			pieces: map[board.Point]board.Piece{pt(1, 2): board.DarkMan},
			want:   DarkWins,
		},
		{
			name: "dark blocked",
			turn: board.Dark,
			pieces: map[board.Point]board.Piece{
				pt(0, 1): board.DarkMan,
				pt(1, 2): board.LightMan,
				pt(2, 3): board.LightMan,
			},
			want: LightWins,
		},
		{
			name: "both sides can move",
			turn: board.Light,
			pieces: map[board.Point]board.Piece{
				pt(1, 2): board.DarkMan,
				pt(4, 5): board.LightMan,
			},
			want: Ongoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t, tt.turn, tt.pieces)
			if got := e.Status(b); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if got := e.Status(NewBoard()); got != Ongoing {
		t.Fatalf("opening position reported %s", got)
	}
	if got := len(e.Movable(NewBoard())); got != 4 {
		t.Fatalf("expected 4 movable pieces at the start, got %d", got)
	}
}
