package engine

import "checkers/internal/server/board"

// Moves is the highlight set for one origin, kept apart from the board so
// that query results never mix with stored game state
type Moves struct {
	Origin   board.Point
	Steps    []board.Point
	Captures []board.Route
}

// Empty reports whether the origin has nowhere to go
func (m Moves) Empty() bool {
	return len(m.Steps) == 0 && len(m.Captures) == 0
}

// Route returns the first capture chain, in search order, ending on dst
func (m Moves) Route(dst board.Point) (board.Route, bool) {
	for _, r := range m.Captures {
		if r.Last() == dst {
			return r, true
		}
	}
	return board.Route{}, false
}

// HasStep reports whether dst is a simple (non-capturing) destination
func (m Moves) HasStep(dst board.Point) bool {
	for _, p := range m.Steps {
		if p == dst {
			return true
		}
	}
	return false
}

// Destinations lists every legal final square: steps, then chain ends
func (m Moves) Destinations() []board.Point {
	var out []board.Point
	seen := make(map[board.Point]bool)
	for _, p := range m.Steps {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, r := range m.Captures {
		if p := r.Last(); !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Moves computes the legal steps and capture chains for the piece on origin.
// Under mandatory capture a piece that can capture is offered only its
// captures, and a piece that cannot is offered nothing while another piece of
// its side can (ErrCaptureRequired).
func (e *Engine) Moves(b board.Board, origin board.Point) (Moves, error) {
	b = b.ClearMarkers()
	m := Moves{Origin: origin}

	piece, err := e.origin(b, origin)
	if err != nil {
		return m, err
	}

	m.Captures = e.Captures(b, origin)

	if e.rules.MandatoryCapture {
		if len(m.Captures) > 0 {
			return m, nil
		}
		if sideHasCapture(b, piece.Color()) {
			return m, ErrCaptureRequired
		}
	}

	m.Steps = steps(b, origin, piece)
	return m, nil
}

// steps lists non-capturing destinations: one square forward for men, any
// distance along the four diagonals for kings
func steps(b board.Board, from board.Point, piece board.Piece) []board.Point {
	var out []board.Point
	forward := piece.Color().Forward()

	for _, d := range board.Diagonals {
		if !piece.IsKing() {
			if d.Y != forward {
				continue
			}
			if p := from.Add(d); p.Valid() && b.At(p).IsVacant() {
				out = append(out, p)
			}
			continue
		}
		for p := from.Add(d); p.Valid() && b.At(p).IsVacant(); p = p.Add(d) {
			out = append(out, p)
		}
	}

	return out
}

// LegalMoves returns a copy of b with its old markers cleared and the legal
// destinations of origin marked: MoveMarker on simple destinations,
// CaptureMarker on every landing square of every capture chain. When origin
// cannot move the cleared board is returned with the reason.
func (e *Engine) LegalMoves(b board.Board, origin board.Point) (board.Board, error) {
	out := b.ClearMarkers()

	m, err := e.Moves(out, origin)
	if err != nil {
		return out, err
	}

	for _, p := range m.Steps {
		out.Set(p, board.MoveMarker)
	}
	for _, r := range m.Captures {
		for _, p := range r.Tail() {
			// A chain may pass back over the origin, which still holds the piece
			if out.At(p).IsOccupied() {
				continue
			}
			out.Set(p, board.CaptureMarker)
		}
	}

	return out, nil
}

// Movable lists the pieces of the side to move that have at least one legal move
func (e *Engine) Movable(b board.Board) []board.Point {
	b = b.ClearMarkers()
	var out []board.Point
	for _, p := range b.Pieces(b.Turn()) {
		m, err := e.Moves(b, p)
		if err == nil && !m.Empty() {
			out = append(out, p)
		}
	}
	return out
}
