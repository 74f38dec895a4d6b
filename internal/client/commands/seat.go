package commands

import (
	"fmt"
	"os"
	"strings"

	"checkers/internal/client/display"

	"golang.org/x/term"
)

func (r *Registry) registerSeatCommands() {
	r.Register(&Command{
		Name:        "seat",
		ShortName:   "t",
		Description: "Claim a color in the current room",
		Usage:       "seat <light|dark>",
		Handler:     r.seatHandler,
	})
}

// readPassword reads a secret without echo when stdin is a terminal
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var line string
		_, err := fmt.Fscanln(os.Stdin, &line)
		return line, err
	}
	bytePassword, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(bytePassword), nil
}

func (r *Registry) seatHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: seat <light|dark>")
	}
	roomID, err := currentRoom(s)
	if err != nil {
		return err
	}
	color := strings.ToLower(args[0])

	c := s.GetClient()
	room, err := c.GetRoom(roomID)
	if err != nil {
		return err
	}

	password := ""
	if room.Protected {
		if password, err = r.ReadPassword("Room password: "); err != nil {
			return err
		}
	}

	resp, err := c.ClaimSeat(roomID, color, password)
	if err != nil {
		return err
	}
	s.SetSeat(resp.Token, resp.Color)

	r.printf("%sSeated as %s%s\n", display.Green, display.ColorForTurn(resp.Color), display.Reset)
	r.printf("Seat ID: %s\n", resp.SeatID)
	return nil
}
