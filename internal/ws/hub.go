package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"onemsu-server/internal/models"
)

// Conn is the subset of *websocket.Conn the hub needs. Narrowed so tests
// can observe deliveries without a live socket.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type connRecord struct {
	userID int
	roomID string
}

// Hub tracks live connections and who they currently represent. A user's
// online state is reference counted across connections so a second tab
// closing does not flicker presence off.
type Hub struct {
	mu     sync.Mutex
	conns  map[Conn]connRecord
	online map[int]int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns:  make(map[Conn]connRecord),
		online: make(map[int]int),
	}
}

// Join binds a connection to (user, room). A connection represents one
// logical user at a time: re-joining under a new identity retires the old
// one first, while re-joining as the same user only moves the room so the
// connection is counted once. A 0 to 1 count transition broadcasts
// presence-online to every connection, unscoped by room.
func (h *Hub) Join(conn Conn, userID int, roomID string) {
	h.mu.Lock()
	var transitions []models.PresenceEvent
	if prev, ok := h.conns[conn]; ok {
		if prev.userID == userID {
			h.conns[conn] = connRecord{userID: userID, roomID: roomID}
			h.mu.Unlock()
			return
		}
		if h.release(prev.userID) {
			transitions = append(transitions, models.PresenceEvent{Type: "presence", UserID: prev.userID, Online: false})
		}
	}
	if h.online[userID] == 0 {
		transitions = append(transitions, models.PresenceEvent{Type: "presence", UserID: userID, Online: true})
	}
	h.online[userID]++
	h.conns[conn] = connRecord{userID: userID, roomID: roomID}
	targets := h.snapshotLocked()
	h.mu.Unlock()

	for _, ev := range transitions {
		h.send(targets, ev)
	}
}

// Leave drops a connection on disconnect. A 1 to 0 count transition for its
// user broadcasts presence-offline.
func (h *Hub) Leave(conn Conn) {
	h.mu.Lock()
	rec, ok := h.conns[conn]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn)
	wentOffline := h.release(rec.userID)
	targets := h.snapshotLocked()
	h.mu.Unlock()

	if wentOffline {
		h.send(targets, models.PresenceEvent{Type: "presence", UserID: rec.userID, Online: false})
	}
}

// IsOnline reports whether the user has at least one open connection.
func (h *Hub) IsOnline(userID int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.online[userID] > 0
}

// BroadcastRoom delivers an event to every connection whose current join
// record matches the room. Delivery is best-effort: dead connections are
// closed and dropped, never retried.
func (h *Hub) BroadcastRoom(roomID string, event any) {
	h.mu.Lock()
	var targets []Conn
	for conn, rec := range h.conns {
		if rec.roomID == roomID {
			targets = append(targets, conn)
		}
	}
	h.mu.Unlock()

	h.send(targets, event)
}

// release decrements a user's connection count, reporting whether the user
// just went offline. Callers hold h.mu.
func (h *Hub) release(userID int) bool {
	h.online[userID]--
	if h.online[userID] <= 0 {
		delete(h.online, userID)
		return true
	}
	return false
}

func (h *Hub) snapshotLocked() []Conn {
	targets := make([]Conn, 0, len(h.conns))
	for conn := range h.conns {
		targets = append(targets, conn)
	}
	return targets
}

func (h *Hub) send(targets []Conn, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket marshal error: %v", err)
		return
	}
	for _, conn := range targets {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.Leave(conn)
		}
	}
}
