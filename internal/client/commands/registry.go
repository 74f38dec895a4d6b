package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/client/display"
)

type Session interface {
	GetAPIBaseURL() string
	SetAPIBaseURL(string)
	GetCurrentRoom() string
	SetCurrentRoom(string)
	SetSeat(token, color string)
	GetSeatColor() string
	ForgetRoom(string)
	GetLastMoveCount() int
	SetLastMoveCount(int)
	GetClient() *api.Client
	IsVerbose() bool
	GetRoomState() *api.RoomResponse
	SetRoomState(*api.RoomResponse)
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  Session
	commands map[string]*Command
	out      io.Writer

	// ReadPassword prompts for a secret; replaced in tests
	ReadPassword func(prompt string) (string, error)
}

func NewRegistry(session Session) *Registry {
	r := &Registry{
		session:      session,
		commands:     make(map[string]*Command),
		out:          os.Stdout,
		ReadPassword: readPassword,
	}

	r.registerRoomCommands()
	r.registerSeatCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Handler:     exitHandler,
	})

	return r
}

// SetOutput redirects command output
func (r *Registry) SetOutput(w io.Writer) {
	r.out = w
	r.session.GetClient().Out = w
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

func (r *Registry) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Execute runs one input line and reports whether it succeeded
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		r.printf("%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
		r.printf("Type 'help' for available commands\n")
		return false
	}

	r.session.GetClient().SetVerbose(r.session.IsVerbose())

	if err := cmd.Handler(r.session, args); err != nil {
		r.printf("%sError: %s%s\n", display.Red, err.Error(), display.Reset)
		return false
	}
	return true
}

func (r *Registry) helpHandler(s Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		r.printf("\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			r.printf("Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		r.printf("Usage: %s\n", cmd.Usage)
		return nil
	}

	r.printf("\n%sAvailable Commands:%s\n\n", display.Cyan, display.Reset)

	groups := []struct {
		title string
		names []string
	}{
		{"Room Commands", []string{"new", "list", "join", "show", "state", "moves", "move", "undo", "reset", "delete", "poll"}},
		{"Seat Commands", []string{"seat"}},
		{"Utility Commands", []string{"health", "url", "raw", "clear", "help", "exit"}},
	}

	for i, group := range groups {
		if i > 0 {
			r.printf("\n")
		}
		r.printf("%s%s:%s\n", display.Yellow, group.title, display.Reset)
		for _, name := range group.names {
			cmd, exists := r.commands[name]
			if !exists {
				continue
			}
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
			}
			r.printf("  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	r.printf("\nType 'help <command>' for detailed usage\n")
	r.printf("Add '-v' to any command for verbose output\n")
	return nil
}

func exitHandler(s Session, args []string) error {
	fmt.Printf("%sGoodbye!%s\n", display.Cyan, display.Reset)
	os.Exit(0)
	return nil
}

// currentRoom returns the session's room or an error telling the user to pick one
func currentRoom(s Session) (string, error) {
	roomID := s.GetCurrentRoom()
	if roomID == "" {
		return "", fmt.Errorf("no current room, use 'new' or 'join <roomId>'")
	}
	return roomID, nil
}
