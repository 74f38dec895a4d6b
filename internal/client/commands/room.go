package commands

import (
	"fmt"
	"strconv"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/client/display"
)

func (r *Registry) registerRoomCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new room",
		Usage:       "new [-p] [name] [position]  (-p prompts for a room password)",
		Handler:     r.newRoomHandler,
	})

	r.Register(&Command{
		Name:        "list",
		ShortName:   "l",
		Description: "List rooms",
		Usage:       "list",
		Handler:     r.listRoomsHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current room ID",
		Usage:       "join <roomId>",
		Handler:     r.joinRoomHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and room state",
		Usage:       "show",
		Handler:     r.showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw room JSON",
		Usage:       "state",
		Handler:     r.roomStateHandler,
	})

	r.Register(&Command{
		Name:        "moves",
		ShortName:   "g",
		Description: "Show legal moves of a piece",
		Usage:       "moves <square>",
		Handler:     r.legalMovesHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <from> <to>",
		Handler:     r.moveHandler,
	})

	r.Register(&Command{
		Name:        "undo",
		ShortName:   "u",
		Description: "Undo moves",
		Usage:       "undo [count]",
		Handler:     r.undoHandler,
	})

	r.Register(&Command{
		Name:        "reset",
		ShortName:   "r",
		Description: "Reset the room to its initial position",
		Usage:       "reset",
		Handler:     r.resetHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a room",
		Usage:       "delete [roomId]",
		Handler:     r.deleteRoomHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for room updates",
		Usage:       "poll",
		Handler:     r.pollHandler,
	})
}

func (r *Registry) newRoomHandler(s Session, args []string) error {
	c := s.GetClient()
	req := &api.CreateRoomRequest{}

	if len(args) > 0 && args[0] == "-p" {
		password, err := r.ReadPassword("Room password: ")
		if err != nil {
			return err
		}
		req.Password = password
		args = args[1:]
	}
	if len(args) > 0 {
		req.Name = args[0]
	}
	if len(args) > 1 {
		// Positions carry a space before the side to move
		req.Position = strings.Join(args[1:], " ")
	}

	resp, err := c.CreateRoom(req)
	if err != nil {
		return err
	}

	s.SetCurrentRoom(resp.RoomID)
	s.SetRoomState(resp)

	r.printf("%sRoom created: %s%s\n", display.Green, resp.RoomID, display.Reset)
	r.printf("%sCurrent room set to: %s%s\n", display.Cyan, resp.RoomID, display.Reset)
	return nil
}

func (r *Registry) listRoomsHandler(s Session, args []string) error {
	resp, err := s.GetClient().ListRooms()
	if err != nil {
		return err
	}

	if len(resp.Rooms) == 0 {
		r.printf("%sNo rooms%s\n", display.Yellow, display.Reset)
		return nil
	}
	for _, room := range resp.Rooms {
		lock := ""
		if room.Protected {
			lock = " [locked]"
		}
		r.printf("  %s%s%s  %-16s %-10s moves:%d%s\n",
			display.White, room.RoomID, display.Reset, room.Name, room.State, len(room.Moves), lock)
	}
	return nil
}

func (r *Registry) joinRoomHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <roomId>")
	}

	roomID := args[0]
	resp, err := s.GetClient().GetRoom(roomID)
	if err != nil {
		return err
	}

	s.SetCurrentRoom(roomID)
	s.SetRoomState(resp)

	r.printf("%sJoined room: %s%s\n", display.Green, roomID, display.Reset)
	r.printf("Turn: %s | State: %s | Moves: %d\n", resp.Turn, resp.State, len(resp.Moves))
	return nil
}

func (r *Registry) showBoardHandler(s Session, args []string) error {
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	room, err := s.GetClient().GetRoom(roomID)
	if err != nil {
		return err
	}
	s.SetRoomState(room)

	r.printf("\n")
	display.RenderRows(r.out, room.Rows)

	r.printf("\nPosition: %s\n", room.Position)
	r.printf("Turn: %s | State: %s | Moves: %d\n",
		display.ColorForTurn(room.Turn), room.State, len(room.Moves))

	if len(room.Moves) > 0 {
		r.printf("\nHistory: ")
		for i, move := range room.Moves {
			if i > 0 {
				r.printf(" ")
			}
			if i%2 == 0 {
				r.printf("%d.%s", (i/2)+1, move)
			} else {
				r.printf("%s", move)
			}
		}
		r.printf("\n")
	}

	if room.LastMove != nil {
		r.printf("Last move: %s by %s", room.LastMove.Move, room.LastMove.PlayerColor)
		if room.LastMove.Promoted {
			r.printf(" (crowned)")
		}
		r.printf("\n")
	}
	return nil
}

func (r *Registry) roomStateHandler(s Session, args []string) error {
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().GetRoom(roomID)
	if err != nil {
		return err
	}
	s.SetRoomState(resp)

	r.printf("%sRoom State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(resp)
	return nil
}

func (r *Registry) legalMovesHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: moves <square>")
	}
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().LegalMoves(roomID, args[0])
	if err != nil {
		return err
	}

	r.printf("\n")
	display.RenderRows(r.out, resp.Rows)
	if resp.Reason != "" {
		r.printf("\n%s%s cannot move: %s%s\n", display.Yellow, resp.From, resp.Reason, display.Reset)
		return nil
	}
	if len(resp.Steps) > 0 {
		r.printf("\nSteps: %s\n", strings.Join(resp.Steps, " "))
	}
	for _, route := range resp.Captures {
		r.printf("Capture: %s\n", strings.Join(route, "x"))
	}
	if len(resp.Destinations) == 0 {
		r.printf("%sNo legal moves from %s%s\n", display.Yellow, resp.From, display.Reset)
	}
	return nil
}

func (r *Registry) moveHandler(s Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: move <from> <to>")
	}
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().MakeMove(roomID, args[0], args[1])
	if err != nil {
		return err
	}
	s.SetRoomState(resp)

	r.printf("%sMove accepted%s", display.Green, display.Reset)
	if resp.LastMove != nil {
		r.printf(": %s", resp.LastMove.Move)
	}
	r.printf("\n")
	if resp.State != "ongoing" {
		r.printf("%sGame over: %s%s\n", display.Magenta, resp.State, display.Reset)
	}
	return nil
}

func (r *Registry) undoHandler(s Session, args []string) error {
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	count := 1
	if len(args) > 0 {
		count, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count: %s", args[0])
		}
	}

	resp, err := s.GetClient().UndoMoves(roomID, count)
	if err != nil {
		return err
	}
	s.SetRoomState(resp)

	r.printf("%sUndid %d move(s)%s\n", display.Green, count, display.Reset)
	return nil
}

func (r *Registry) resetHandler(s Session, args []string) error {
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().ResetRoom(roomID)
	if err != nil {
		return err
	}
	s.SetRoomState(resp)

	r.printf("%sRoom reset%s\n", display.Green, display.Reset)
	return nil
}

func (r *Registry) deleteRoomHandler(s Session, args []string) error {
	roomID := s.GetCurrentRoom()
	if len(args) > 0 {
		roomID = args[0]
	}
	if roomID == "" {
		return fmt.Errorf("specify room ID or set current room")
	}

	if err := s.GetClient().DeleteRoom(roomID); err != nil {
		return err
	}
	s.ForgetRoom(roomID)

	r.printf("%sRoom deleted: %s%s\n", display.Green, roomID, display.Reset)
	return nil
}

func (r *Registry) pollHandler(s Session, args []string) error {
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}

	moveCount := s.GetLastMoveCount()
	r.printf("%sLong-polling for updates (move count: %d)...%s\n", display.Cyan, moveCount, display.Reset)
	r.printf("%sThis may take up to 25 seconds%s\n", display.Cyan, display.Reset)

	resp, err := s.GetClient().GetRoomWithPoll(roomID, moveCount)
	if err != nil {
		return err
	}
	s.SetRoomState(resp)

	if len(resp.Moves) != moveCount {
		r.printf("%sRoom updated%s\n", display.Green, display.Reset)
		if resp.LastMove != nil {
			r.printf("Last move: %s\n", resp.LastMove.Move)
		}
	} else {
		r.printf("%sNo updates (timeout)%s\n", display.Yellow, display.Reset)
	}
	return nil
}
