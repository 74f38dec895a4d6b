package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"checkers/internal/server/board"
	"checkers/internal/server/core"
	"checkers/internal/server/game"
	"checkers/internal/server/storage"

	"github.com/google/uuid"
	"github.com/lixenwraith/auth"
)

// GenerateRoomID creates a new unique room ID
func (s *Service) GenerateRoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.rooms[id]; !exists {
			return id
		}
	}
}

// CreateRoom registers a room at the given position. A non-empty password
// protects seat claims.
func (s *Service) CreateRoom(id, name, position string, password string) (game.View, error) {
	b, err := board.ParsePosition(position)
	if err != nil {
		return game.View{}, err
	}

	var hash string
	if password != "" {
		if hash, err = auth.HashPassword(password); err != nil {
			return game.View{}, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[id]; exists {
		return game.View{}, fmt.Errorf("room %s already exists", id)
	}
	if len(s.rooms) >= MaxRooms {
		return game.View{}, ErrRoomLimit
	}

	r := game.New(id, name, b.Position(), b.Turn())
	r.SetPasswordHash(hash)
	s.rooms[id] = r

	if s.store != nil {
		s.store.RecordNewRoom(storage.RoomRecord{
			RoomID:          id,
			Name:            name,
			InitialPosition: r.InitialPosition(),
			PasswordHash:    hash,
			CreatedAtUTC:    r.CreatedAt(),
		})
	}

	return r.View(), nil
}

// SetRoomState records a game result computed outside a move, such as a
// custom starting position that is already decided
func (s *Service) SetRoomState(roomID string, state core.State) (game.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return game.View{}, ErrRoomNotFound
	}
	r.SetState(state)
	return r.View(), nil
}

// GetRoom returns a detached view of a room
func (s *Service) GetRoom(roomID string) (game.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return game.View{}, ErrRoomNotFound
	}
	return r.View(), nil
}

// ListRooms returns every room, oldest first
func (s *Service) ListRooms() []game.View {
	s.mu.RLock()
	views := make([]game.View, 0, len(s.rooms))
	for _, r := range s.rooms {
		views = append(views, r.View())
	}
	s.mu.RUnlock()

	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID < views[j].ID
		}
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views
}

// PlayMove runs play against the room's current state and records its
// outcome. The room stays locked for the whole call, so two moves on one
// room can never interleave. play must not call back into the service.
func (s *Service) PlayMove(roomID string, play func(v game.View) (game.Outcome, error)) (game.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return game.View{}, ErrRoomNotFound
	}

	outcome, err := play(r.View())
	if err != nil {
		return r.View(), err
	}

	mover := r.NextTurn()
	r.Apply(outcome)

	if s.store != nil {
		s.store.RecordMove(storage.MoveRecord{
			RoomID:            roomID,
			MoveNumber:        r.MoveCount(),
			Notation:          outcome.Move.String(),
			PositionAfterMove: r.CurrentPosition(),
			PlayerColor:       string(mover.Code()),
			MoveTimeUTC:       time.Now().UTC(),
		})
	}

	return s.changed(r), nil
}

// UndoMoves removes the last count moves from a room
func (s *Service) UndoMoves(roomID string, count int) (game.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return game.View{}, ErrRoomNotFound
	}

	if err := r.UndoMoves(count); err != nil {
		return r.View(), err
	}

	if s.store != nil {
		s.store.DeleteUndoneMoves(roomID, r.MoveCount())
	}

	return s.changed(r), nil
}

// ResetRoom returns a room to its initial position
func (s *Service) ResetRoom(roomID string) (game.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return game.View{}, ErrRoomNotFound
	}

	r.Reset()

	if s.store != nil {
		s.store.DeleteUndoneMoves(roomID, 0)
	}

	return s.changed(r), nil
}

// DeleteRoom removes a room from memory and storage
func (s *Service) DeleteRoom(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return ErrRoomNotFound
	}

	s.waiter.RemoveRoom(roomID)
	if s.broadcaster != nil {
		s.broadcaster.CloseRoom(roomID)
	}
	delete(s.rooms, roomID)

	if s.store != nil {
		s.store.DeleteRoom(roomID)
	}
	return nil
}

// Restore loads stored rooms into memory, replaying their move history.
// evaluate computes the game state of each room's current position.
func (s *Service) Restore(evaluate func(b board.Board) core.State) (int, error) {
	if s.store == nil {
		return 0, nil
	}

	stored, err := s.store.LoadRooms()
	if err != nil {
		return 0, fmt.Errorf("failed to load rooms: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := 0
	for _, sr := range stored {
		r, err := rebuildRoom(sr)
		if err != nil {
			log.Printf("restore: skipping room %s: %v", sr.Room.RoomID, err)
			continue
		}
		if b, err := r.Board(); err == nil && evaluate != nil {
			r.SetState(evaluate(b))
		}
		s.rooms[r.ID()] = r
		restored++
	}

	return restored, nil
}

func rebuildRoom(sr storage.StoredRoom) (*game.Room, error) {
	initial, err := board.ParsePosition(sr.Room.InitialPosition)
	if err != nil {
		return nil, fmt.Errorf("initial position: %w", err)
	}

	r := game.New(sr.Room.RoomID, sr.Room.Name, sr.Room.InitialPosition, initial.Turn())
	r.SetPasswordHash(sr.Room.PasswordHash)
	r.SetCreatedAt(sr.Room.CreatedAtUTC)
	if sr.Room.LightSeat != "" {
		r.ClaimSeat(board.Light, sr.Room.LightSeat)
	}
	if sr.Room.DarkSeat != "" {
		r.ClaimSeat(board.Dark, sr.Room.DarkSeat)
	}

	for _, m := range sr.Moves {
		b, err := board.ParsePosition(m.PositionAfterMove)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", m.MoveNumber, err)
		}
		r.AddSnapshot(m.PositionAfterMove, m.Notation, b.Turn())
	}

	return r, nil
}
