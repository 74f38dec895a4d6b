// Package main implements an interactive debugging client for the checkers server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/client/commands"
	"checkers/internal/client/display"
	"checkers/internal/client/session"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		display.DisableColors()
	}

	s := session.New(*apiURL)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("checkers"),
		HistoryFile:     ".checkers_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sCheckers Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *session.Session) string {
	promptStr := "checkers"

	parts := []string{}
	if s.CurrentRoom != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.White, s.CurrentRoom[:8], display.Reset))
	}
	switch s.GetSeatColor() {
	case "light":
		parts = append(parts, display.Blue+"Light"+display.Reset)
	case "dark":
		parts = append(parts, display.Red+"Dark"+display.Reset)
	case "both":
		parts = append(parts, display.Magenta+"Both"+display.Reset)
	}
	if len(parts) > 0 {
		promptStr += display.Yellow + " [" + display.Reset + strings.Join(parts, display.Yellow+" - "+display.Reset) + display.Yellow + "]"
	}

	if room := s.RoomState; room != nil {
		if room.State == "ongoing" {
			promptStr += " - Turn:" + display.ColorForTurn(room.Turn)
		} else {
			promptStr += " - " + display.Magenta + room.State + display.Reset
		}
	}

	return display.Prompt(promptStr)
}
