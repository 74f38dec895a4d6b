package processor

import (
	"checkers/internal/server/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateRoom CommandType = iota
	CmdListRooms
	CmdGetRoom
	CmdGetBoard
	CmdLegalMoves
	CmdMakeMove
	CmdUndoMove
	CmdResetRoom
	CmdDeleteRoom
	CmdClaimSeat
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	SeatID string // from a validated seat token, empty for anonymous callers
	RoomID string
	Args   any
}

// LegalMovesArgs names the square whose moves are requested
type LegalMovesArgs struct {
	From string
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateRoomCommand(req core.CreateRoomRequest) Command {
	return Command{
		Type: CmdCreateRoom,
		Args: req,
	}
}

func NewListRoomsCommand() Command {
	return Command{Type: CmdListRooms}
}

func NewGetRoomCommand(roomID string) Command {
	return Command{
		Type:   CmdGetRoom,
		RoomID: roomID,
	}
}

func NewGetBoardCommand(roomID string) Command {
	return Command{
		Type:   CmdGetBoard,
		RoomID: roomID,
	}
}

func NewLegalMovesCommand(roomID, from string) Command {
	return Command{
		Type:   CmdLegalMoves,
		RoomID: roomID,
		Args:   LegalMovesArgs{From: from},
	}
}

func NewMakeMoveCommand(roomID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		RoomID: roomID,
		Args:   req,
	}
}

func NewUndoMoveCommand(roomID string, req core.UndoRequest) Command {
	return Command{
		Type:   CmdUndoMove,
		RoomID: roomID,
		Args:   req,
	}
}

func NewResetRoomCommand(roomID string) Command {
	return Command{
		Type:   CmdResetRoom,
		RoomID: roomID,
	}
}

func NewDeleteRoomCommand(roomID string) Command {
	return Command{
		Type:   CmdDeleteRoom,
		RoomID: roomID,
	}
}

func NewClaimSeatCommand(roomID string, req core.SeatRequest) Command {
	return Command{
		Type:   CmdClaimSeat,
		RoomID: roomID,
		Args:   req,
	}
}
