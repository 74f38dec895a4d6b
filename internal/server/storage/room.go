package storage

import (
	"database/sql"
	"fmt"
)

// RecordNewRoom asynchronously records a new room
func (s *Store) RecordNewRoom(record RoomRecord) {
	s.enqueue("room record", func(tx *sql.Tx) error {
		query := `INSERT INTO rooms (
			room_id, name, initial_position, password_hash, light_seat, dark_seat, created_at_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.RoomID, record.Name, record.InitialPosition, record.PasswordHash,
			record.LightSeat, record.DarkSeat, record.CreatedAtUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			room_id, move_number, notation, position_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.RoomID, record.MoveNumber, record.Notation,
			record.PositionAfterMove, record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// DeleteUndoneMoves asynchronously deletes moves after an undo. A reset
// passes zero and clears the whole history.
func (s *Store) DeleteUndoneMoves(roomID string, afterMoveNumber int) {
	s.enqueue("undo", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM moves WHERE room_id = ? AND move_number > ?`, roomID, afterMoveNumber)
		return err
	})
}

// RecordSeat asynchronously stores the holder of a seat
func (s *Store) RecordSeat(roomID, color, seatID string) {
	column := "light_seat"
	if color == "b" {
		column = "dark_seat"
	}
	s.enqueue("seat", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE rooms SET `+column+` = ? WHERE room_id = ?`, seatID, roomID)
		return err
	})
}

// DeleteRoom asynchronously removes a room and, by cascade, its moves
func (s *Store) DeleteRoom(roomID string) {
	s.enqueue("room delete", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM rooms WHERE room_id = ?`, roomID)
		return err
	})
}

// QueryRooms retrieves rooms with optional filtering, "*" or empty matches all
func (s *Store) QueryRooms(roomID, name string) ([]RoomRecord, error) {
	query := `SELECT
		room_id, name, initial_position, password_hash, light_seat, dark_seat, created_at_utc
	FROM rooms WHERE 1=1`

	var args []any

	if roomID != "" && roomID != "*" {
		query += " AND room_id = ?"
		args = append(args, roomID)
	}

	if name != "" && name != "*" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY created_at_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var rooms []RoomRecord
	for rows.Next() {
		var r RoomRecord
		err := rows.Scan(
			&r.RoomID, &r.Name, &r.InitialPosition, &r.PasswordHash,
			&r.LightSeat, &r.DarkSeat, &r.CreatedAtUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return rooms, nil
}

// QueryMoves retrieves the move history of a room in play order
func (s *Store) QueryMoves(roomID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, room_id, move_number, notation, position_after_move, player_color, move_time_utc
	FROM moves WHERE room_id = ? ORDER BY move_number`, roomID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanMoves(rows)
}

// LoadRooms returns every stored room with its moves, oldest room first
func (s *Store) LoadRooms() ([]StoredRoom, error) {
	records, err := s.QueryRooms("", "")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT
		move_id, room_id, move_number, notation, position_after_move, player_color, move_time_utc
	FROM moves ORDER BY room_id, move_number`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	moves, err := scanMoves(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	byRoom := make(map[string][]MoveRecord)
	for _, m := range moves {
		byRoom[m.RoomID] = append(byRoom[m.RoomID], m)
	}

	stored := make([]StoredRoom, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		stored = append(stored, StoredRoom{
			Room:  records[i],
			Moves: byRoom[records[i].RoomID],
		})
	}
	return stored, nil
}

func scanMoves(rows *sql.Rows) ([]MoveRecord, error) {
	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(
			&m.MoveID, &m.RoomID, &m.MoveNumber, &m.Notation,
			&m.PositionAfterMove, &m.PlayerColor, &m.MoveTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return moves, nil
}
