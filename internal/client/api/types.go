package api

import "checkers/internal/server/core"

// Wire types shared with the server
type (
	CreateRoomRequest  = core.CreateRoomRequest
	MoveRequest        = core.MoveRequest
	UndoRequest        = core.UndoRequest
	SeatRequest        = core.SeatRequest
	RoomResponse       = core.RoomResponse
	RoomListResponse   = core.RoomListResponse
	BoardResponse      = core.BoardResponse
	LegalMovesResponse = core.LegalMovesResponse
	SeatResponse       = core.SeatResponse
	ErrorResponse      = core.ErrorResponse
)

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage,omitempty"`
	Rooms   int    `json:"rooms"`
}
