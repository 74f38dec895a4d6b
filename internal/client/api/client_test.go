package api

import (
	"io"
	"net"
	"strings"
	"testing"

	"checkers/internal/server/engine"
	serverhttp "checkers/internal/server/http"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"
)

func startServer(t *testing.T) *Client {
	t.Helper()

	svc := service.New(nil, []byte("test-secret-minimum-32-characters-long"))
	proc := processor.New(svc, engine.DefaultRules())
	app := serverhttp.NewFiberApp(proc, svc, true)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() {
		app.Shutdown()
		svc.Shutdown(0)
	})

	c := New("http://" + ln.Addr().String() + "/")
	c.Out = io.Discard
	return c
}

func TestClientRoomFlow(t *testing.T) {
	c := startServer(t)

	health, err := c.Health()
	if err != nil || health.Status != "healthy" {
		t.Fatalf("Health: %v %+v", err, health)
	}

	room, err := c.CreateRoom(&CreateRoomRequest{Name: "client"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	legal, err := c.LegalMoves(room.RoomID, "b6")
	if err != nil || len(legal.Destinations) != 2 {
		t.Fatalf("LegalMoves: %v %+v", err, legal)
	}

	seat, err := c.ClaimSeat(room.RoomID, "dark", "")
	if err != nil {
		t.Fatalf("ClaimSeat: %v", err)
	}

	// Without the token the dark seat refuses the move
	_, err = c.MakeMove(room.RoomID, "b6", "a5")
	if err == nil || !strings.Contains(err.Error(), "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}

	c.SetToken(seat.Token)
	moved, err := c.MakeMove(room.RoomID, "b6", "a5")
	if err != nil || len(moved.Moves) != 1 {
		t.Fatalf("MakeMove: %v %+v", err, moved)
	}

	polled, err := c.GetRoomWithPoll(room.RoomID, 0)
	if err != nil || len(polled.Moves) != 1 {
		t.Fatalf("GetRoomWithPoll: %v %+v", err, polled)
	}

	board, err := c.GetBoard(room.RoomID)
	if err != nil || len(board.Rows) != 8 {
		t.Fatalf("GetBoard: %v %+v", err, board)
	}

	if _, err := c.UndoMoves(room.RoomID, 1); err != nil {
		t.Fatalf("UndoMoves: %v", err)
	}
	if _, err := c.ResetRoom(room.RoomID); err != nil {
		t.Fatalf("ResetRoom: %v", err)
	}

	list, err := c.ListRooms()
	if err != nil || len(list.Rooms) != 1 {
		t.Fatalf("ListRooms: %v %+v", err, list)
	}

	if err := c.DeleteRoom(room.RoomID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if _, err := c.GetRoom(room.RoomID); err == nil || !strings.Contains(err.Error(), "ROOM_NOT_FOUND") {
		t.Fatalf("expected ROOM_NOT_FOUND, got %v", err)
	}
}

func TestRawRequest(t *testing.T) {
	c := startServer(t)

	if err := c.RawRequest("POST", "/api/v1/rooms", `{"name":"raw"}`); err != nil {
		t.Fatalf("RawRequest: %v", err)
	}
	if err := c.RawRequest("GET", "/api/v1/rooms/not-a-uuid", ""); err == nil {
		t.Fatalf("expected bad room ID to fail")
	}
}
