package game

import (
	"errors"
	"fmt"
	"time"

	"checkers/internal/server/board"
	"checkers/internal/server/core"
	"checkers/internal/server/engine"
)

var ErrSeatTaken = errors.New("seat already taken")

type Snapshot struct {
	Position     string      `json:"position"`
	PreviousMove string      `json:"previousMove"`
	NextTurn     board.Color `json:"nextTurn"`
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move        engine.Move `json:"move"`
	PlayerColor board.Color `json:"playerColor"`
	State       core.State  `json:"state"`
}

// Outcome is what a rules evaluation hands back to a room after a move
type Outcome struct {
	Board board.Board
	Move  engine.Move
	State core.State
}

type Room struct {
	id           string
	name         string
	passwordHash string
	snapshots    []Snapshot
	seats        map[board.Color]string
	state        core.State
	lastResult   *MoveResult
	createdAt    time.Time
	lastActivity time.Time
}

func New(id, name, initialPosition string, startingTurn board.Color) *Room {
	now := time.Now().UTC()
	return &Room{
		id:   id,
		name: name,
		snapshots: []Snapshot{
			{
				Position: initialPosition,
				NextTurn: startingTurn,
			},
		},
		seats:        make(map[board.Color]string),
		state:        core.StateOngoing,
		createdAt:    now,
		lastActivity: now,
	}
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) Name() string {
	return r.name
}

// CurrentSnapshot returns the latest room snapshot
func (r *Room) CurrentSnapshot() Snapshot {
	return r.snapshots[len(r.snapshots)-1]
}

func (r *Room) CurrentPosition() string {
	return r.CurrentSnapshot().Position
}

func (r *Room) InitialPosition() string {
	return r.snapshots[0].Position
}

func (r *Room) NextTurn() board.Color {
	return r.CurrentSnapshot().NextTurn
}

// Board decodes the current position
func (r *Room) Board() (board.Board, error) {
	return board.ParsePosition(r.CurrentPosition())
}

func (r *Room) AddSnapshot(position, move string, nextTurn board.Color) {
	r.snapshots = append(r.snapshots, Snapshot{
		Position:     position,
		PreviousMove: move,
		NextTurn:     nextTurn,
	})
}

// Apply records a completed move
func (r *Room) Apply(o Outcome) {
	mover := o.Board.Turn().Next()
	r.AddSnapshot(o.Board.Position(), o.Move.String(), o.Board.Turn())
	r.state = o.State
	r.lastResult = &MoveResult{
		Move:        o.Move,
		PlayerColor: mover,
		State:       o.State,
	}
	r.Touch()
}

func (r *Room) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	availableMoves := len(r.snapshots) - 1
	if availableMoves < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, availableMoves)
	}

	r.snapshots = r.snapshots[:len(r.snapshots)-count]
	r.state = core.StateOngoing
	r.lastResult = nil
	r.Touch()
	return nil
}

// Reset returns the room to its initial position. Seats are kept.
func (r *Room) Reset() {
	r.snapshots = r.snapshots[:1]
	r.state = core.StateOngoing
	r.lastResult = nil
	r.Touch()
}

func (r *Room) Moves() []string {
	moves := []string{}
	for i := 1; i < len(r.snapshots); i++ {
		if r.snapshots[i].PreviousMove != "" {
			moves = append(moves, r.snapshots[i].PreviousMove)
		}
	}
	return moves
}

func (r *Room) MoveCount() int {
	return len(r.snapshots) - 1
}

func (r *Room) State() core.State {
	return r.state
}

func (r *Room) SetState(s core.State) {
	r.state = s
}

func (r *Room) LastResult() *MoveResult {
	return r.lastResult
}

func (r *Room) SetPasswordHash(hash string) {
	r.passwordHash = hash
}

func (r *Room) PasswordHash() string {
	return r.passwordHash
}

func (r *Room) Protected() bool {
	return r.passwordHash != ""
}

// ClaimSeat assigns color to seatID. Claiming a seat already held by the
// same seat ID is a no-op.
func (r *Room) ClaimSeat(color board.Color, seatID string) error {
	if color != board.Light && color != board.Dark {
		return fmt.Errorf("invalid seat color: %s", color)
	}
	if holder, ok := r.seats[color]; ok && holder != seatID {
		return ErrSeatTaken
	}
	r.seats[color] = seatID
	r.Touch()
	return nil
}

// SeatHolder returns the seat ID holding color, empty when unclaimed
func (r *Room) SeatHolder(color board.Color) string {
	return r.seats[color]
}

// HoldsAnySeat reports whether seatID holds either color
func (r *Room) HoldsAnySeat(seatID string) bool {
	if seatID == "" {
		return false
	}
	for _, holder := range r.seats {
		if holder == seatID {
			return true
		}
	}
	return false
}

func (r *Room) HasSeats() bool {
	return len(r.seats) > 0
}

func (r *Room) Touch() {
	r.lastActivity = time.Now().UTC()
}

func (r *Room) LastActivity() time.Time {
	return r.lastActivity
}

func (r *Room) CreatedAt() time.Time {
	return r.createdAt
}

// SetCreatedAt overrides the creation time of a room rebuilt from storage
func (r *Room) SetCreatedAt(t time.Time) {
	r.createdAt = t
}

// View is a detached copy of a room, safe to read without the service lock
type View struct {
	ID              string
	Name            string
	InitialPosition string
	Position        string
	Turn            board.Color
	State           core.State
	Moves           []string
	Seats           map[board.Color]string
	Protected       bool
	LastResult      *MoveResult
	CreatedAt       time.Time
	LastActivity    time.Time
}

func (r *Room) View() View {
	seats := make(map[board.Color]string, len(r.seats))
	for c, id := range r.seats {
		seats[c] = id
	}

	var last *MoveResult
	if r.lastResult != nil {
		copied := *r.lastResult
		last = &copied
	}

	return View{
		ID:              r.id,
		Name:            r.name,
		InitialPosition: r.InitialPosition(),
		Position:        r.CurrentPosition(),
		Turn:            r.NextTurn(),
		State:           r.state,
		Moves:           r.Moves(),
		Seats:           seats,
		Protected:       r.Protected(),
		LastResult:      last,
		CreatedAt:       r.createdAt,
		LastActivity:    r.lastActivity,
	}
}

// Board decodes the position captured in the view
func (v View) Board() (board.Board, error) {
	return board.ParsePosition(v.Position)
}

func (v View) MoveCount() int {
	return len(v.Moves)
}
