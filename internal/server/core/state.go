package core

type State int

const (
	StateOngoing State = iota
	StateLightWins
	StateDarkWins
)

func (s State) String() string {
	switch s {
	case StateLightWins:
		return "light wins"
	case StateDarkWins:
		return "dark wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// IsOver reports whether the game has a winner
func (s State) IsOver() bool {
	return s == StateLightWins || s == StateDarkWins
}
