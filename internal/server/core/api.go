package core

import "time"

// Request types

type CreateRoomRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,max=64"`
	Position string `json:"position,omitempty" validate:"omitempty,max=100"` // empty for the opening position
	Password string `json:"password,omitempty" validate:"omitempty,min=4,max=128"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,square"`
	To   string `json:"to" validate:"required,square"`
}

type UndoRequest struct {
	Count int `json:"count" validate:"required,min=1,max=500"`
}

type SeatRequest struct {
	Color    string `json:"color" validate:"required,oneof=light dark"`
	Password string `json:"password,omitempty" validate:"omitempty,max=128"`
}

// Response types

type RoomResponse struct {
	RoomID    string    `json:"roomId"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Turn      string    `json:"turn"`  // "light" or "dark"
	State     string    `json:"state"` // "ongoing", "light wins", "dark wins"
	Moves     []string  `json:"moves"`
	Rows      []string  `json:"rows"`
	Seats     SeatsInfo `json:"seats"`
	Protected bool      `json:"protected"`
	LastMove  *MoveInfo `json:"lastMove,omitempty"`
	Rules     RulesInfo `json:"rules"`
	CreatedAt time.Time `json:"createdAt"`
}

// SeatsInfo reports which colors have been claimed
type SeatsInfo struct {
	Light bool `json:"light"`
	Dark  bool `json:"dark"`
}

type RulesInfo struct {
	MandatoryCapture bool `json:"mandatoryCapture"`
	PromoteMidChain  bool `json:"promoteMidChain"`
}

type MoveInfo struct {
	Move        string   `json:"move"`
	PlayerColor string   `json:"playerColor"`
	Path        []string `json:"path,omitempty"`
	Captured    []string `json:"captured,omitempty"`
	Promoted    bool     `json:"promoted,omitempty"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

type BoardResponse struct {
	Position string   `json:"position"`
	Board    string   `json:"board"` // ASCII representation
	Rows     []string `json:"rows"`
}

// LegalMovesResponse lists the destinations of one piece. Board and Rows
// carry the same destinations as markers.
type LegalMovesResponse struct {
	From         string     `json:"from"`
	Destinations []string   `json:"destinations"`
	Steps        []string   `json:"steps"`
	Captures     [][]string `json:"captures"`
	Board        string     `json:"board"`
	Rows         []string   `json:"rows"`
	Reason       string     `json:"reason,omitempty"` // why the piece cannot move
	Code         string     `json:"code,omitempty"`
}

type SeatResponse struct {
	RoomID string `json:"roomId"`
	Color  string `json:"color"`
	SeatID string `json:"seatId"`
	Token  string `json:"token"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
