package engine

import "checkers/internal/server/board"

// branch is one entry of the capture worklist. The pieces it has jumped are
// tracked alongside the route, so the search never writes to a board.
type branch struct {
	route    board.Route
	piece    board.Piece
	captured []board.Point
}

// jump is a single capture: the enemy square and one landing square behind it
type jump struct {
	over    board.Point
	landing board.Point
}

// view answers occupancy questions for a branch: the origin has been vacated
// and captured pieces are already off the board
type view struct {
	b        board.Board
	origin   board.Point
	captured []board.Point
}

func (v view) piece(p board.Point) board.Piece {
	if p == v.origin {
		return board.NoPiece
	}
	for _, c := range v.captured {
		if c == p {
			return board.NoPiece
		}
	}
	return v.b.At(p).Piece()
}

func (v view) vacant(p board.Point) bool {
	return p.Valid() && v.piece(p) == board.NoPiece
}

// Captures returns every maximal capture chain for the piece on start, in
// breadth-first order by number of jumps. A chain ends when no further jump
// is available from its last landing square. Nil when the piece cannot
// capture or start holds no piece.
func (e *Engine) Captures(b board.Board, start board.Point) []board.Route {
	if !start.Valid() {
		return nil
	}
	b = b.ClearMarkers()
	piece := b.At(start).Piece()
	if piece == board.NoPiece {
		return nil
	}

	var routes []board.Route
	queue := []branch{{route: board.NewRoute(start), piece: piece}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		v := view{b: b, origin: start, captured: cur.captured}
		jumps := jumpsFrom(v, cur.route.Last(), cur.piece)

		if len(jumps) == 0 {
			if cur.route.Jumps() > 0 {
				routes = append(routes, cur.route)
			}
			continue
		}

		for _, j := range jumps {
			captured := make([]board.Point, len(cur.captured), len(cur.captured)+1)
			copy(captured, cur.captured)

			next := branch{
				route:    cur.route.Append(j.landing),
				piece:    cur.piece,
				captured: append(captured, j.over),
			}
			if e.rules.PromoteMidChain && j.landing.Y == next.piece.Color().PromotionRow() {
				next.piece = next.piece.Promote()
			}
			queue = append(queue, next)
		}
	}

	return routes
}

// jumpsFrom lists the single captures available to piece standing on from
func jumpsFrom(v view, from board.Point, piece board.Piece) []jump {
	var jumps []jump

	for _, d := range board.Diagonals {
		if piece.IsKing() {
			// Slide to the first occupied square on the ray
			s := from.Add(d)
			for v.vacant(s) {
				s = s.Add(d)
			}
			if !s.Valid() || !piece.IsEnemy(v.piece(s)) {
				continue
			}
			// Every vacant square behind the enemy is a separate landing choice
			for l := s.Add(d); v.vacant(l); l = l.Add(d) {
				jumps = append(jumps, jump{over: s, landing: l})
			}
			continue
		}

		n := from.Add(d)
		if !n.Valid() || !piece.IsEnemy(v.piece(n)) {
			continue
		}
		if l := n.Add(d); v.vacant(l) {
			jumps = append(jumps, jump{over: n, landing: l})
		}
	}

	return jumps
}

// hasCapture reports whether the piece on p has at least one jump
func hasCapture(b board.Board, p board.Point) bool {
	piece := b.At(p).Piece()
	if piece == board.NoPiece {
		return false
	}
	return len(jumpsFrom(view{b: b, origin: p}, p, piece)) > 0
}

// sideHasCapture reports whether any piece of color c can capture
func sideHasCapture(b board.Board, c board.Color) bool {
	for _, p := range b.Pieces(c) {
		if hasCapture(b, p) {
			return true
		}
	}
	return false
}
