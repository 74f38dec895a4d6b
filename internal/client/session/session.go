// Package session holds the state of an interactive client.
package session

import "checkers/internal/client/api"

type Session struct {
	APIBaseURL    string
	Client        *api.Client
	Verbose       bool
	CurrentRoom   string
	RoomState     *api.RoomResponse
	LastMoveCount int

	// seats by room ID
	seats map[string]seat
}

type seat struct {
	token string
	color string
}

func New(baseURL string) *Session {
	return &Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
		seats:      make(map[string]seat),
	}
}

func (s *Session) GetAPIBaseURL() string { return s.APIBaseURL }

func (s *Session) SetAPIBaseURL(url string) {
	s.APIBaseURL = url
	s.Client.SetBaseURL(url)
}

func (s *Session) GetCurrentRoom() string { return s.CurrentRoom }

// SetCurrentRoom switches rooms and sends that room's seat token, if any
func (s *Session) SetCurrentRoom(roomID string) {
	s.CurrentRoom = roomID
	s.Client.SetToken(s.seats[roomID].token)
	if roomID == "" {
		s.RoomState = nil
		s.LastMoveCount = 0
	}
}

// SetSeat records a seat in the current room
func (s *Session) SetSeat(token, color string) {
	if s.seats == nil {
		s.seats = make(map[string]seat)
	}
	held := s.seats[s.CurrentRoom]
	held.token = token
	switch {
	case held.color == "" || held.color == color:
		held.color = color
	default:
		held.color = "both"
	}
	s.seats[s.CurrentRoom] = held
	s.Client.SetToken(token)
}

// GetSeatColor returns the color held in the current room
func (s *Session) GetSeatColor() string { return s.seats[s.CurrentRoom].color }

// ForgetRoom drops the seat held in a deleted room
func (s *Session) ForgetRoom(roomID string) {
	delete(s.seats, roomID)
	if roomID == s.CurrentRoom {
		s.SetCurrentRoom("")
	}
}

func (s *Session) GetLastMoveCount() int  { return s.LastMoveCount }
func (s *Session) SetLastMoveCount(n int) { s.LastMoveCount = n }
func (s *Session) GetClient() *api.Client { return s.Client }
func (s *Session) IsVerbose() bool        { return s.Verbose }

func (s *Session) GetRoomState() *api.RoomResponse { return s.RoomState }

// SetRoomState stores the latest room view and its move count
func (s *Session) SetRoomState(room *api.RoomResponse) {
	s.RoomState = room
	if room != nil {
		s.LastMoveCount = len(room.Moves)
	}
}
