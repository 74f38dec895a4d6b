package display

import (
	"fmt"
	"io"
	"strings"
)

const files = "a b c d e f g h"

// RenderRows renders board rows, top rank first, with coordinates and
// colored pieces. Move markers '*' and capture markers 'x' are highlighted.
func RenderRows(w io.Writer, rows []string) {
	fmt.Fprintf(w, "   %s%s%s\n", Cyan, files, Reset)
	for i, row := range rows {
		rank := len(rows) - i
		fmt.Fprintf(w, "%s%d%s  ", Cyan, rank, Reset)
		cells := make([]string, 0, len(row))
		for _, ch := range row {
			cells = append(cells, colorCell(ch))
		}
		fmt.Fprintf(w, "%s  %s%d%s\n", strings.Join(cells, " "), Cyan, rank, Reset)
	}
	fmt.Fprintf(w, "   %s%s%s\n", Cyan, files, Reset)
}

func colorCell(ch rune) string {
	switch ch {
	case 'w', 'W':
		return Blue + string(ch) + Reset
	case 'b', 'B':
		return Red + string(ch) + Reset
	case '*':
		return Green + "*" + Reset
	case 'x':
		return Magenta + "x" + Reset
	default:
		return string(ch)
	}
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "light" {
		return Blue + "Light" + Reset
	}
	return Red + "Dark" + Reset
}
