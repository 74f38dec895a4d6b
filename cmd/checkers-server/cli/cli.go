package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"checkers/internal/server/board"
	"checkers/internal/server/storage"

	"github.com/lixenwraith/auth"
	"golang.org/x/term"
)

// Output receives everything the CLI prints
var Output io.Writer = os.Stdout

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves, room, check-hash")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	case "moves":
		return runMoves(args[1:])
	case "room":
		if len(args) < 2 {
			return fmt.Errorf("room subcommand required: set-password, set-hash, clear-seats, remove")
		}
		return runRoom(args[1], args[2:])
	case "check-hash":
		return runCheckHash(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// openStore parses -path from a flag set and opens the database
func openStore(fs *flag.FlagSet, path *string, args []string) (*storage.Store, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}
	store, err := storage.NewStore(*path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(Output, "Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(Output, "Database deleted: %s\n", *path)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	roomID := fs.String("roomId", "", "Room ID to filter (optional, * for all)")
	name := fs.String("name", "", "Room name to filter (optional, * for all)")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	rooms, err := store.QueryRooms(*roomID, *name)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(rooms) == 0 {
		fmt.Fprintln(Output, "No rooms found")
		return nil
	}

	w := tabwriter.NewWriter(Output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Room ID\tName\tLocked\tLight\tDark\tCreated")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range rooms {
		locked := "no"
		if r.PasswordHash != "" {
			locked = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			short(r.RoomID),
			r.Name,
			locked,
			short(r.LightSeat),
			short(r.DarkSeat),
			r.CreatedAtUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(Output, "\nFound %d room(s)\n", len(rooms))
	return nil
}

func runMoves(args []string) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	roomID := fs.String("roomId", "", "Room ID (required)")
	showBoard := fs.Bool("board", false, "Print the final position as a board")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *roomID == "" {
		return fmt.Errorf("room ID required")
	}

	moves, err := store.QueryMoves(*roomID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(moves) == 0 {
		fmt.Fprintln(Output, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(Output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tColor\tMove\tTime")
	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.MoveNumber, m.PlayerColor, m.Notation, m.MoveTimeUTC.Format("15:04:05"))
	}
	w.Flush()

	if *showBoard {
		b, err := board.ParsePosition(moves[len(moves)-1].PositionAfterMove)
		if err != nil {
			return fmt.Errorf("stored position unreadable: %w", err)
		}
		fmt.Fprintf(Output, "\n%s", b.ToASCII())
	}
	return nil
}

func runRoom(subcommand string, args []string) error {
	switch subcommand {
	case "set-password":
		return runRoomSetPassword(args)
	case "set-hash":
		return runRoomSetHash(args)
	case "clear-seats":
		return runRoomClearSeats(args)
	case "remove":
		return runRoomRemove(args)
	default:
		return fmt.Errorf("unknown room subcommand: %s", subcommand)
	}
}

func runRoomSetPassword(args []string) error {
	fs := flag.NewFlagSet("room set-password", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	roomID := fs.String("roomId", "", "Room ID (required)")
	password := fs.String("password", "", "New password, empty removes protection")
	interactive := fs.Bool("interactive", false, "Interactive password prompt")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *roomID == "" {
		return fmt.Errorf("room ID required")
	}

	newPassword := *password
	if *interactive {
		if *password != "" {
			return fmt.Errorf("cannot use -interactive with -password")
		}
		fmt.Fprint(Output, "Enter new password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(Output)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		newPassword = string(pwBytes)
	}

	hash := ""
	if newPassword != "" {
		if len(newPassword) < 4 {
			return fmt.Errorf("password must be at least 4 characters")
		}
		// Argon2
		if hash, err = auth.HashPassword(newPassword); err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := store.UpdateRoomPassword(*roomID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if hash == "" {
		fmt.Fprintf(Output, "Password removed for room: %s\n", *roomID)
	} else {
		fmt.Fprintf(Output, "Password updated for room: %s\n", *roomID)
	}
	return nil
}

func runRoomSetHash(args []string) error {
	fs := flag.NewFlagSet("room set-hash", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	roomID := fs.String("roomId", "", "Room ID (required)")
	hash := fs.String("hash", "", "Password hash (required)")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *roomID == "" {
		return fmt.Errorf("room ID required")
	}
	if *hash == "" {
		return fmt.Errorf("password hash required")
	}
	if err := auth.ValidatePHCHashFormat(*hash); err != nil {
		return fmt.Errorf("invalid hash format: %w", err)
	}

	if err := store.UpdateRoomPassword(*roomID, *hash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	fmt.Fprintf(Output, "Password hash updated for room: %s\n", *roomID)
	return nil
}

func runRoomClearSeats(args []string) error {
	fs := flag.NewFlagSet("room clear-seats", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	roomID := fs.String("roomId", "", "Room ID (required)")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *roomID == "" {
		return fmt.Errorf("room ID required")
	}
	if err := store.ClearSeats(*roomID); err != nil {
		return fmt.Errorf("failed to clear seats: %w", err)
	}

	fmt.Fprintf(Output, "Seats cleared for room: %s\n", *roomID)
	return nil
}

func runRoomRemove(args []string) error {
	fs := flag.NewFlagSet("room remove", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	roomID := fs.String("roomId", "", "Room ID (required)")

	store, err := openStore(fs, path, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *roomID == "" {
		return fmt.Errorf("room ID required")
	}
	if err := store.RemoveRoom(*roomID); err != nil {
		return fmt.Errorf("failed to remove room: %w", err)
	}

	fmt.Fprintf(Output, "Room removed: %s\n", *roomID)
	return nil
}

func runCheckHash(args []string) error {
	fs := flag.NewFlagSet("check-hash", flag.ContinueOnError)
	hash := fs.String("hash", "", "Password hash to validate (required)")
	password := fs.String("password", "", "Password to verify against the hash (optional)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hash == "" {
		return fmt.Errorf("password hash required")
	}

	if err := auth.ValidatePHCHashFormat(*hash); err != nil {
		return fmt.Errorf("invalid hash format: %w", err)
	}
	fmt.Fprintln(Output, "Hash format valid")

	if *password != "" {
		if err := auth.VerifyPassword(*password, *hash); err != nil {
			return fmt.Errorf("password does not match")
		}
		fmt.Fprintln(Output, "Password matches")
	}
	return nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	if id == "" {
		return "-"
	}
	return id
}
