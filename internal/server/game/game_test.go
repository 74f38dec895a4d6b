package game

import (
	"errors"
	"testing"

	"checkers/internal/server/board"
	"checkers/internal/server/core"
	"checkers/internal/server/engine"
)

func playOpening(t *testing.T, r *Room, e *engine.Engine, from, to string) {
	t.Helper()
	b, err := r.Board()
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	f, _ := board.ParseSquare(from)
	d, _ := board.ParseSquare(to)
	next, move, err := e.ApplyMove(b, f, d)
	if err != nil {
		t.Fatalf("ApplyMove %s-%s: %v", from, to, err)
	}
	r.Apply(Outcome{Board: next, Move: move, State: core.StateOngoing})
}

func TestRoomHistory(t *testing.T) {
	e := engine.New(engine.DefaultRules())
	r := New("room-1", "test", board.StartingPosition, board.Dark)

	playOpening(t, r, e, "b6", "a5")
	playOpening(t, r, e, "a3", "b4")

	if got := r.Moves(); len(got) != 2 || got[0] != "b6-a5" || got[1] != "a3-b4" {
		t.Fatalf("unexpected moves %v", got)
	}
	if r.NextTurn() != board.Dark {
		t.Fatalf("expected dark to move after two plies, got %s", r.NextTurn())
	}
	if last := r.LastResult(); last == nil || last.PlayerColor != board.Light {
		t.Fatalf("expected last move by light, got %+v", last)
	}

	if err := r.UndoMoves(3); err == nil {
		t.Fatalf("expected error undoing more moves than played")
	}
	if err := r.UndoMoves(1); err != nil {
		t.Fatalf("UndoMoves: %v", err)
	}
	if r.MoveCount() != 1 || r.NextTurn() != board.Light || r.LastResult() != nil {
		t.Fatalf("undo did not restore the previous snapshot")
	}

	r.Reset()
	if r.MoveCount() != 0 || r.CurrentPosition() != board.StartingPosition {
		t.Fatalf("reset did not restore the initial position: %s", r.CurrentPosition())
	}
}

func TestRoomSeats(t *testing.T) {
	r := New("room-2", "", board.StartingPosition, board.Dark)

	if err := r.ClaimSeat(board.Light, "seat-a"); err != nil {
		t.Fatalf("ClaimSeat: %v", err)
	}
	if err := r.ClaimSeat(board.Light, "seat-a"); err != nil {
		t.Fatalf("reclaiming own seat: %v", err)
	}
	if err := r.ClaimSeat(board.Light, "seat-b"); !errors.Is(err, ErrSeatTaken) {
		t.Fatalf("expected ErrSeatTaken, got %v", err)
	}
	if err := r.ClaimSeat(board.NoColor, "seat-b"); err == nil {
		t.Fatalf("expected error for invalid color")
	}
	if r.SeatHolder(board.Light) != "seat-a" || r.SeatHolder(board.Dark) != "" {
		t.Fatalf("unexpected seat holders")
	}
	if !r.HoldsAnySeat("seat-a") || r.HoldsAnySeat("seat-b") || r.HoldsAnySeat("") {
		t.Fatalf("HoldsAnySeat mismatch")
	}

	r.Reset()
	if r.SeatHolder(board.Light) != "seat-a" {
		t.Fatalf("reset released a seat")
	}
}

func TestViewIsDetached(t *testing.T) {
	r := New("room-3", "", board.StartingPosition, board.Dark)
	r.ClaimSeat(board.Dark, "seat-a")

	v := r.View()
	v.Seats[board.Light] = "intruder"
	v.Moves = append(v.Moves, "x")

	if r.SeatHolder(board.Light) != "" {
		t.Fatalf("view shares seat map with room")
	}
	if len(r.Moves()) != 0 {
		t.Fatalf("view shares move list with room")
	}
	b, err := v.Board()
	if err != nil {
		t.Fatalf("view Board: %v", err)
	}
	if b.Turn() != board.Dark {
		t.Fatalf("unexpected turn %s", b.Turn())
	}
}
