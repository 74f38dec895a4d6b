package storage

import "time"

// RoomRecord represents a row in the rooms table
type RoomRecord struct {
	RoomID          string    `db:"room_id"`
	Name            string    `db:"name"`
	InitialPosition string    `db:"initial_position"`
	PasswordHash    string    `db:"password_hash"` // empty for open rooms
	LightSeat       string    `db:"light_seat"`
	DarkSeat        string    `db:"dark_seat"`
	CreatedAtUTC    time.Time `db:"created_at_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID            int64     `db:"move_id"`
	RoomID            string    `db:"room_id"`
	MoveNumber        int       `db:"move_number"`
	Notation          string    `db:"notation"`
	PositionAfterMove string    `db:"position_after_move"`
	PlayerColor       string    `db:"player_color"` // "w" or "b"
	MoveTimeUTC       time.Time `db:"move_time_utc"`
}

// StoredRoom is a room with its move history in play order
type StoredRoom struct {
	Room  RoomRecord
	Moves []MoveRecord
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS rooms (
	room_id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	initial_position TEXT NOT NULL,
	password_hash TEXT NOT NULL DEFAULT '',
	light_seat TEXT NOT NULL DEFAULT '',
	dark_seat TEXT NOT NULL DEFAULT '',
	created_at_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	notation TEXT NOT NULL,
	position_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (room_id) REFERENCES rooms(room_id) ON DELETE CASCADE,
	UNIQUE(room_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_room_id ON moves(room_id);
CREATE INDEX IF NOT EXISTS idx_rooms_name ON rooms(name);
`
