package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"checkers/internal/server/storage"

	"github.com/lixenwraith/auth"
)

const roomID = "5b0d5c1e-4c3a-4a77-9d3b-3f7c2a1e9b10"

func capture(t *testing.T, args ...string) string {
	t.Helper()
	var out strings.Builder
	prev := Output
	Output = &out
	defer func() { Output = prev }()

	if err := Run(args); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.db")
	capture(t, "init", "-path", path)

	s, err := storage.NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	s.RecordNewRoom(storage.RoomRecord{
		RoomID:          roomID,
		Name:            "club",
		InitialPosition: "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/w1w1w1w1/1w1w1w1w/w1w1w1w1 b",
		DarkSeat:        "seat-dark-holder",
		CreatedAtUTC:    time.Now().UTC(),
	})
	s.RecordMove(storage.MoveRecord{
		RoomID:            roomID,
		MoveNumber:        1,
		Notation:          "b6-a5",
		PositionAfterMove: "1b1b1b1b/b1b1b1b1/3b1b1b/b7/8/w1w1w1w1/1w1w1w1w/w1w1w1w1 w",
		PlayerColor:       "b",
		MoveTimeUTC:       time.Now().UTC(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	s.Close()
	return path
}

func TestQueryAndMoves(t *testing.T) {
	path := seedDB(t)

	out := capture(t, "query", "-path", path)
	if !strings.Contains(out, "club") || !strings.Contains(out, "Found 1 room(s)") {
		t.Fatalf("unexpected query output:\n%s", out)
	}

	out = capture(t, "query", "-path", path, "-name", "nobody")
	if !strings.Contains(out, "No rooms found") {
		t.Fatalf("expected empty result:\n%s", out)
	}

	out = capture(t, "moves", "-path", path, "-roomId", roomID, "-board")
	if !strings.Contains(out, "b6-a5") {
		t.Fatalf("move missing:\n%s", out)
	}
}

func TestRoomAdmin(t *testing.T) {
	path := seedDB(t)

	capture(t, "room", "set-password", "-path", path, "-roomId", roomID, "-password", "secret")
	out := capture(t, "query", "-path", path, "-roomId", roomID)
	if !strings.Contains(out, "yes") {
		t.Fatalf("room not locked:\n%s", out)
	}

	hash, err := auth.HashPassword("other")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	capture(t, "room", "set-hash", "-path", path, "-roomId", roomID, "-hash", hash)

	capture(t, "room", "clear-seats", "-path", path, "-roomId", roomID)
	out = capture(t, "query", "-path", path)
	if strings.Contains(out, "seat-dar") {
		t.Fatalf("seat not cleared:\n%s", out)
	}

	capture(t, "room", "remove", "-path", path, "-roomId", roomID)
	if err := Run([]string{"room", "remove", "-path", path, "-roomId", roomID}); err == nil {
		t.Fatalf("expected removing a missing room to fail")
	}

	capture(t, "delete", "-path", path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("database file still present")
	}
}

func TestCheckHash(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	out := capture(t, "check-hash", "-hash", hash, "-password", "secret")
	if !strings.Contains(out, "Password matches") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if err := Run([]string{"check-hash", "-hash", hash, "-password", "wrong"}); err == nil {
		t.Fatalf("expected mismatch")
	}
	if err := Run([]string{"check-hash", "-hash", "not-a-hash"}); err == nil {
		t.Fatalf("expected invalid format")
	}
}

func TestUsageErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"bogus"},
		{"room"},
		{"room", "bogus"},
		{"query"},
		{"moves", "-path", filepath.Join(t.TempDir(), "x.db")},
	}
	for _, args := range cases {
		if err := Run(args); err == nil {
			t.Fatalf("%v should fail", args)
		}
	}
}
