// Package engine implements the draughts rules on top of board values:
// legal-move computation, capture-chain search, move execution and promotion.
// Every operation takes a board by value and returns a new one.
package engine

import (
	"errors"

	"checkers/internal/server/board"
)

var (
	ErrNoPieceAtOrigin    = errors.New("no piece at origin")
	ErrWrongTurn          = errors.New("piece does not belong to the side to move")
	ErrIllegalDestination = errors.New("destination is not a legal move for this piece")
	ErrCaptureRequired    = errors.New("another piece must capture")
)

// Rules selects between the rule variants the engine supports
type Rules struct {
	// MandatoryCapture forbids simple moves while the side to move has a capture
	MandatoryCapture bool `json:"mandatoryCapture"`
	// PromoteMidChain crowns a man as soon as a jump lands on its promotion
	// row, letting it finish the chain with king range
	PromoteMidChain bool `json:"promoteMidChain"`
}

// DefaultRules enforces mandatory capture and promotes only at the end of a move
func DefaultRules() Rules {
	return Rules{
		MandatoryCapture: true,
		PromoteMidChain:  false,
	}
}

// Engine holds only its rules and is safe for concurrent use
type Engine struct {
	rules Rules
}

func New(rules Rules) *Engine {
	return &Engine{rules: rules}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// NewBoard returns the standard opening position with Dark to move
func NewBoard() board.Board {
	return board.New()
}

// origin validates a query origin and returns its piece
func (e *Engine) origin(b board.Board, from board.Point) (board.Piece, error) {
	cell, err := b.Get(from)
	if err != nil {
		return board.NoPiece, err
	}
	piece := cell.Piece()
	if piece == board.NoPiece {
		return board.NoPiece, ErrNoPieceAtOrigin
	}
	if piece.Color() != b.Turn() {
		return board.NoPiece, ErrWrongTurn
	}
	return piece, nil
}
