// Package live pushes room changes to websocket subscribers.
package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"checkers/internal/server/core"
	"checkers/internal/server/game"

	"github.com/gorilla/websocket"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 16
)

// Message is the frame sent to subscribers
type Message struct {
	Type   string             `json:"type"` // "room", "closed" or "ping"
	RoomID string             `json:"roomId,omitempty"`
	Room   *core.RoomResponse `json:"room,omitempty"`
}

// Lookup returns the current view of a room
type Lookup func(roomID string) (game.View, error)

// Renderer turns a view into the API representation
type Renderer func(v game.View) core.RoomResponse

type client struct {
	roomID    string
	conn      *websocket.Conn
	send      chan []byte
	delivered bool // a published view was queued, guarded by Hub.mu
}

// Hub fans room views out to the subscribers of each room
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]map[*client]struct{}
	lookup   Lookup
	render   Renderer
	upgrader websocket.Upgrader
	closed   bool
}

func NewHub(lookup Lookup, render Renderer) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*client]struct{}),
		lookup: lookup,
		render: render,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish queues a room view for every subscriber of the room. It never
// blocks: a subscriber with a full buffer is dropped.
func (h *Hub) Publish(v game.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.rooms[v.ID]
	if len(subs) == 0 {
		return
	}

	resp := h.render(v)
	data, err := json.Marshal(Message{Type: "room", RoomID: v.ID, Room: &resp})
	if err != nil {
		log.Printf("LIVE marshal room %s: %v", v.ID, err)
		return
	}

	for c := range subs {
		c.delivered = true
		select {
		case c.send <- data:
		default:
			log.Printf("LIVE dropping slow subscriber of room %s", v.ID)
			h.removeLocked(c)
		}
	}
}

// CloseRoom tells the subscribers of a room that it is gone and disconnects them
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, _ := json.Marshal(Message{Type: "closed", RoomID: roomID})
	for c := range h.rooms[roomID] {
		select {
		case c.send <- data:
		default:
		}
		h.removeLocked(c)
	}
}

// Subscribers returns the number of connections watching a room
func (h *Hub) Subscribers(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// Close disconnects every subscriber and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, subs := range h.rooms {
		for c := range subs {
			h.removeLocked(c)
		}
	}
}

// removeLocked unregisters a client. Closing send stops its writer, which
// closes the connection. Called with h.mu held.
func (h *Hub) removeLocked(c *client) {
	subs, ok := h.rooms[c.roomID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.rooms, c.roomID)
	}
	close(c.send)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	subs, ok := h.rooms[c.roomID]
	if !ok {
		subs = make(map[*client]struct{})
		h.rooms[c.roomID] = subs
	}
	subs[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// greet queues the initial view unless a newer one was already published
func (h *Hub) greet(c *client, v game.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.delivered {
		return
	}
	if _, ok := h.rooms[c.roomID][c]; !ok {
		return
	}

	resp := h.render(v)
	data, err := json.Marshal(Message{Type: "room", RoomID: v.ID, Room: &resp})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// ServeRoom upgrades /rooms/{roomId} to a subscription
func (h *Hub) ServeRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")
	if _, err := h.lookup(roomID); err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		return
	}

	c := &client{roomID: roomID, conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		conn.Close()
		return
	}

	// Registered before the lookup so no change can slip between the two
	if v, err := h.lookup(roomID); err == nil {
		h.greet(c, v)
	}

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, c.send); err != nil {
			h.unregister(c)
		}
	}()

	// Subscribers only listen; reads detect the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(c)
			return
		}
	}
}

// Handler routes subscription requests
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rooms/{roomId}", h.ServeRoom)
	return mux
}

// writeWithHeartbeat drains send into conn and pings idle connections
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(Message{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < pingInterval {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
