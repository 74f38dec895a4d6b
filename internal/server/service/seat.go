package service

import (
	"errors"
	"fmt"

	"checkers/internal/server/board"

	"github.com/google/uuid"
	"github.com/lixenwraith/auth"
)

// Seat is a claimed color in a room, identified by the token's subject
type Seat struct {
	RoomID string
	Color  board.Color
	SeatID string
	Token  string
}

// ClaimSeat gives the caller the color in a room and issues a seat token.
// holderID is the seat ID from a token the caller already has, empty
// otherwise. Reusing it lets one client hold both colors or refresh a token.
func (s *Service) ClaimSeat(roomID string, color board.Color, password, holderID string) (Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return Seat{}, ErrRoomNotFound
	}

	if r.Protected() {
		if err := auth.VerifyPassword(password, r.PasswordHash()); err != nil {
			return Seat{}, ErrBadPassword
		}
	}

	seatID := holderID
	if seatID == "" {
		seatID = uuid.New().String()
	}

	if err := r.ClaimSeat(color, seatID); err != nil {
		return Seat{}, err
	}

	claims := map[string]any{
		"roomId": roomID,
		"color":  color.String(),
	}
	token, err := auth.GenerateHS256Token(s.jwtSecret, seatID, claims, SeatTokenTTL)
	if err != nil {
		return Seat{}, fmt.Errorf("failed to generate token: %w", err)
	}

	if s.store != nil {
		s.store.RecordSeat(roomID, string(color.Code()), seatID)
	}
	s.changed(r)

	return Seat{
		RoomID: roomID,
		Color:  color,
		SeatID: seatID,
		Token:  token,
	}, nil
}

// ValidateToken verifies a seat token and returns the seat ID with claims
func (s *Service) ValidateToken(token string) (string, map[string]any, error) {
	if len(s.jwtSecret) == 0 {
		return "", nil, errors.New("seat tokens disabled")
	}
	return auth.ValidateHS256Token(s.jwtSecret, token)
}
