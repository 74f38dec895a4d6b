package processor

import (
	"errors"
	"fmt"
	"strings"

	"checkers/internal/server/board"
	"checkers/internal/server/core"
	"checkers/internal/server/engine"
	"checkers/internal/server/game"
	"checkers/internal/server/service"
)

var (
	errNotSeatHolder = errors.New("seat belongs to another player")
	errGameOver      = errors.New("game is over")
)

// Processor handles command execution and coordinates between service and engine layers
type Processor struct {
	svc *service.Service
	eng *engine.Engine
}

func New(svc *service.Service, rules engine.Rules) *Processor {
	return &Processor{
		svc: svc,
		eng: engine.New(rules),
	}
}

// Rules returns the rule set moves are checked against
func (p *Processor) Rules() engine.Rules {
	return p.eng.Rules()
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateRoom:
		return p.handleCreateRoom(cmd)
	case CmdListRooms:
		return p.handleListRooms(cmd)
	case CmdGetRoom:
		return p.handleGetRoom(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdLegalMoves:
		return p.handleLegalMoves(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdUndoMove:
		return p.handleUndoMove(cmd)
	case CmdResetRoom:
		return p.handleResetRoom(cmd)
	case CmdDeleteRoom:
		return p.handleDeleteRoom(cmd)
	case CmdClaimSeat:
		return p.handleClaimSeat(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// Evaluate reports the game state of a position
func (p *Processor) Evaluate(b board.Board) core.State {
	switch p.eng.Status(b) {
	case engine.LightWins:
		return core.StateLightWins
	case engine.DarkWins:
		return core.StateDarkWins
	default:
		return core.StateOngoing
	}
}

func (p *Processor) handleCreateRoom(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateRoomRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	position := board.StartingPosition
	if s := strings.TrimSpace(args.Position); s != "" {
		position = s
	}
	b, err := board.ParsePosition(position)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidPosition)
	}

	roomID := p.svc.GenerateRoomID()
	v, err := p.svc.CreateRoom(roomID, strings.TrimSpace(args.Name), b.Position(), args.Password)
	if err != nil {
		if errors.Is(err, service.ErrRoomLimit) {
			return p.errorResponse(err.Error(), core.ErrResourceLimit)
		}
		return p.errorResponse(fmt.Sprintf("failed to create room: %v", err), core.ErrInternalError)
	}

	// A custom position may already be decided
	if state := p.Evaluate(b); state != core.StateOngoing {
		if v, err = p.svc.SetRoomState(roomID, state); err != nil {
			return p.errorResponse("room creation failed", core.ErrInternalError)
		}
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildRoomResponse(v),
	}
}

func (p *Processor) handleListRooms(cmd Command) ProcessorResponse {
	views := p.svc.ListRooms()
	resp := core.RoomListResponse{Rooms: make([]core.RoomResponse, 0, len(views))}
	for _, v := range views {
		resp.Rooms = append(resp.Rooms, p.buildRoomResponse(v))
	}
	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

func (p *Processor) handleGetRoom(cmd Command) ProcessorResponse {
	v, err := p.svc.GetRoom(cmd.RoomID)
	if err != nil {
		return p.errorFrom(err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    p.buildRoomResponse(v),
	}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	v, err := p.svc.GetRoom(cmd.RoomID)
	if err != nil {
		return p.errorFrom(err)
	}

	b, err := v.Board()
	if err != nil {
		return p.errorResponse("error parsing position", core.ErrInvalidPosition)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			Position: v.Position,
			Board:    b.ToASCII(),
			Rows:     b.Rows(),
		},
	}
}

// handleLegalMoves reports the destinations of one piece. A piece that
// cannot move is not an error: the response carries the reason.
func (p *Processor) handleLegalMoves(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(LegalMovesArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	from, err := board.ParseSquare(strings.TrimSpace(args.From))
	if err != nil {
		return p.errorFrom(err)
	}

	v, err := p.svc.GetRoom(cmd.RoomID)
	if err != nil {
		return p.errorFrom(err)
	}
	b, err := v.Board()
	if err != nil {
		return p.errorResponse("error parsing position", core.ErrInvalidPosition)
	}

	resp := core.LegalMovesResponse{
		From:         from.String(),
		Destinations: []string{},
		Steps:        []string{},
		Captures:     [][]string{},
	}

	marked, err := p.eng.LegalMoves(b, from)
	resp.Board = marked.ToASCII()
	resp.Rows = marked.Rows()
	if err != nil {
		resp.Reason, resp.Code = errorCode(err)
		return ProcessorResponse{Success: true, Data: resp}
	}

	moves, err := p.eng.Moves(b, from)
	if err != nil {
		return p.errorFrom(err)
	}
	resp.Destinations = squares(moves.Destinations())
	resp.Steps = squares(moves.Steps)
	for _, r := range moves.Captures {
		resp.Captures = append(resp.Captures, squares(r.Points()))
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	from, err := board.ParseSquare(strings.TrimSpace(args.From))
	if err != nil {
		return p.errorFrom(err)
	}
	to, err := board.ParseSquare(strings.TrimSpace(args.To))
	if err != nil {
		return p.errorFrom(err)
	}

	v, err := p.svc.PlayMove(cmd.RoomID, func(v game.View) (game.Outcome, error) {
		if v.State.IsOver() {
			return game.Outcome{}, errGameOver
		}
		if holder := v.Seats[v.Turn]; holder != "" && holder != cmd.SeatID {
			return game.Outcome{}, errNotSeatHolder
		}

		b, err := v.Board()
		if err != nil {
			return game.Outcome{}, err
		}
		next, move, err := p.eng.ApplyMove(b, from, to)
		if err != nil {
			return game.Outcome{}, err
		}
		return game.Outcome{
			Board: next,
			Move:  move,
			State: p.Evaluate(next),
		}, nil
	})
	if err != nil {
		return p.errorFrom(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildRoomResponse(v),
	}
}

func (p *Processor) handleUndoMove(cmd Command) ProcessorResponse {
	args := core.UndoRequest{Count: 1}
	if req, ok := cmd.Args.(core.UndoRequest); ok && req.Count > 0 {
		args = req
	}

	if resp, ok := p.authorize(cmd); !ok {
		return resp
	}

	v, err := p.svc.UndoMoves(cmd.RoomID, args.Count)
	if err != nil {
		return p.errorFrom(err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildRoomResponse(v),
	}
}

func (p *Processor) handleResetRoom(cmd Command) ProcessorResponse {
	if resp, ok := p.authorize(cmd); !ok {
		return resp
	}

	v, err := p.svc.ResetRoom(cmd.RoomID)
	if err != nil {
		return p.errorFrom(err)
	}

	// The initial position may be a decided one
	if b, err := v.Board(); err == nil {
		if state := p.Evaluate(b); state != core.StateOngoing {
			v, _ = p.svc.SetRoomState(cmd.RoomID, state)
		}
	}

	return ProcessorResponse{
		Success: true,
		Data:    p.buildRoomResponse(v),
	}
}

func (p *Processor) handleDeleteRoom(cmd Command) ProcessorResponse {
	if resp, ok := p.authorize(cmd); !ok {
		return resp
	}

	if err := p.svc.DeleteRoom(cmd.RoomID); err != nil {
		return p.errorFrom(err)
	}

	return ProcessorResponse{
		Success: true,
	}
}

func (p *Processor) handleClaimSeat(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.SeatRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	color, ok := board.ParseColor(args.Color)
	if !ok {
		return p.errorResponse("invalid seat color", core.ErrInvalidRequest)
	}

	seat, err := p.svc.ClaimSeat(cmd.RoomID, color, args.Password, cmd.SeatID)
	if err != nil {
		return p.errorFrom(err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.SeatResponse{
			RoomID: seat.RoomID,
			Color:  seat.Color.String(),
			SeatID: seat.SeatID,
			Token:  seat.Token,
		},
	}
}

// authorize admits room-wide commands. Once any seat is claimed only a seat
// holder may rewind, reset or delete the room.
func (p *Processor) authorize(cmd Command) (ProcessorResponse, bool) {
	v, err := p.svc.GetRoom(cmd.RoomID)
	if err != nil {
		return p.errorFrom(err), false
	}
	if len(v.Seats) == 0 {
		return ProcessorResponse{}, true
	}
	for _, holder := range v.Seats {
		if holder == cmd.SeatID && cmd.SeatID != "" {
			return ProcessorResponse{}, true
		}
	}
	return p.errorResponse("only a seated player may change this room", core.ErrUnauthorized), false
}

// RoomResponse renders a room view the way the API returns it
func (p *Processor) RoomResponse(v game.View) core.RoomResponse {
	return p.buildRoomResponse(v)
}

// buildRoomResponse constructs standard room response
func (p *Processor) buildRoomResponse(v game.View) core.RoomResponse {
	resp := core.RoomResponse{
		RoomID:   v.ID,
		Name:     v.Name,
		Position: v.Position,
		Turn:     v.Turn.String(),
		State:    v.State.String(),
		Moves:    v.Moves,
		Seats: core.SeatsInfo{
			Light: v.Seats[board.Light] != "",
			Dark:  v.Seats[board.Dark] != "",
		},
		Protected: v.Protected,
		Rules: core.RulesInfo{
			MandatoryCapture: p.eng.Rules().MandatoryCapture,
			PromoteMidChain:  p.eng.Rules().PromoteMidChain,
		},
		CreatedAt: v.CreatedAt,
	}

	if b, err := v.Board(); err == nil {
		resp.Rows = b.Rows()
	}

	if result := v.LastResult; result != nil {
		resp.LastMove = &core.MoveInfo{
			Move:        result.Move.String(),
			PlayerColor: result.PlayerColor.String(),
			Path:        squares(result.Move.Path),
			Captured:    squares(result.Move.Captured),
			Promoted:    result.Move.Promoted,
		}
	}

	return resp
}

// errorCode maps a domain error to its message and code
func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return "room not found", core.ErrRoomNotFound
	case errors.Is(err, board.ErrOutOfBounds):
		return err.Error(), core.ErrOutOfBounds
	case errors.Is(err, engine.ErrNoPieceAtOrigin):
		return err.Error(), core.ErrNoPieceAtOrigin
	case errors.Is(err, engine.ErrWrongTurn):
		return err.Error(), core.ErrWrongTurn
	case errors.Is(err, engine.ErrCaptureRequired):
		return err.Error(), core.ErrCaptureRequired
	case errors.Is(err, engine.ErrIllegalDestination):
		return err.Error(), core.ErrIllegalDestination
	case errors.Is(err, errGameOver):
		return err.Error(), core.ErrGameOver
	case errors.Is(err, errNotSeatHolder), errors.Is(err, service.ErrBadPassword):
		return err.Error(), core.ErrUnauthorized
	case errors.Is(err, game.ErrSeatTaken):
		return err.Error(), core.ErrSeatTaken
	default:
		return err.Error(), core.ErrInvalidRequest
	}
}

func (p *Processor) errorFrom(err error) ProcessorResponse {
	return p.errorResponse(errorCode(err))
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func squares(points []board.Point) []string {
	out := make([]string, 0, len(points))
	for _, pt := range points {
		out = append(out, pt.String())
	}
	return out
}
