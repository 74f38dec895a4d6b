package storage

import (
	"errors"
	"fmt"
)

// ErrRoomNotFound is returned by admin operations on unknown rooms
var ErrRoomNotFound = errors.New("room not found")

// Admin operations run synchronously. They are meant for the db CLI while
// the server is stopped, not for request paths.

// UpdateRoomPassword replaces the password hash of a room, empty clears it
func (s *Store) UpdateRoomPassword(roomID, passwordHash string) error {
	res, err := s.db.Exec(`UPDATE rooms SET password_hash = ? WHERE room_id = ?`, passwordHash, roomID)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return expectOne(res.RowsAffected())
}

// ClearSeats releases both seats of a room
func (s *Store) ClearSeats(roomID string) error {
	res, err := s.db.Exec(`UPDATE rooms SET light_seat = '', dark_seat = '' WHERE room_id = ?`, roomID)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return expectOne(res.RowsAffected())
}

// RemoveRoom deletes a room and its moves
func (s *Store) RemoveRoom(roomID string) error {
	res, err := s.db.Exec(`DELETE FROM rooms WHERE room_id = ?`, roomID)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return expectOne(res.RowsAffected())
}

func expectOne(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
