package engine

import (
	"strings"

	"checkers/internal/server/board"
)

// Move describes a completed move
type Move struct {
	From     board.Point   `json:"from"`
	To       board.Point   `json:"to"`
	Path     []board.Point `json:"path"`     // landing squares after From, To last
	Captured []board.Point `json:"captured"` // squares of removed enemies
	Promoted bool          `json:"promoted"`
}

// IsCapture reports whether the move removed any piece
func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

// String renders "c3-d4" for steps and "c3xe5xg7" for capture chains
func (m Move) String() string {
	if !m.IsCapture() {
		return m.From.String() + "-" + m.To.String()
	}
	names := []string{m.From.String()}
	for _, p := range m.Path {
		names = append(names, p.String())
	}
	return strings.Join(names, "x")
}

// ApplyMove plays the piece on from to to. A destination ending a capture
// chain replays the whole chain. On success the turn advances once and the
// returned board carries no markers. Otherwise the marker-cleared input board
// is returned unchanged together with the reason.
func (e *Engine) ApplyMove(b board.Board, from, to board.Point) (board.Board, Move, error) {
	base := b.ClearMarkers()

	if !to.Valid() {
		return base, Move{}, board.ErrOutOfBounds
	}

	m, err := e.Moves(base, from)
	if err != nil {
		return base, Move{}, err
	}

	var (
		next board.Board
		move Move
	)
	switch route, ok := m.Route(to); {
	case ok:
		next, move = e.replay(base, route)
	case m.HasStep(to):
		next, move = e.step(base, from, to)
	default:
		return base, Move{}, ErrIllegalDestination
	}

	next.AdvanceTurn()
	return next.ClearMarkers(), move, nil
}

// step relocates a piece without capturing
func (e *Engine) step(b board.Board, from, to board.Point) (board.Board, Move) {
	cell := b.At(from)
	b.Set(from, board.Empty)
	b.Set(to, cell)

	return b, Move{
		From:     from,
		To:       to,
		Path:     []board.Point{to},
		Promoted: b.CheckPromotion(to),
	}
}

// replay executes a capture chain one jump at a time. The mover is lifted
// from each landing and every square it passes over is cleared.
func (e *Engine) replay(b board.Board, route board.Route) (board.Board, Move) {
	points := route.Points()
	move := Move{
		From: route.First(),
		To:   route.Last(),
		Path: route.Tail(),
	}

	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		cell := b.At(prev)
		step := curr.Sub(prev).Sign()

		b.Set(prev, board.Empty)
		for p := prev.Add(step); p != curr; p = p.Add(step) {
			if b.At(p).IsOccupied() {
				move.Captured = append(move.Captured, p)
			}
			b.Set(p, board.Empty)
		}
		b.Set(curr, cell)

		if e.rules.PromoteMidChain && i < len(points)-1 && b.CheckPromotion(curr) {
			move.Promoted = true
		}
	}

	if b.CheckPromotion(route.Last()) {
		move.Promoted = true
	}

	return b, move
}
