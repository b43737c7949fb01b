package chatws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// wsConn is the slice of *websocket.Conn the hub needs. Tests substitute a
// recording fake.
type wsConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// client wraps one connection with a write mutex. The read loop, REST
// handlers and the hub all fan events into the same socket, and the
// underlying websocket connection does not tolerate concurrent writers.
type client struct {
	mu   sync.Mutex
	conn wsConn
}

func newClient(conn wsConn) *client {
	return &client{conn: conn}
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) close() error {
	return c.conn.Close()
}

// Hub maintains the per-user delivery groups: every connection a user holds
// receives every event addressed to that user.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[uuid.UUID]*client
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uuid.UUID]map[uuid.UUID]*client)}
}

// Join adds a connection to the user's delivery group.
func (h *Hub) Join(userID, connID uuid.UUID, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[userID]; !ok {
		h.rooms[userID] = make(map[uuid.UUID]*client)
	}
	h.rooms[userID][connID] = cl
}

// Leave removes a connection; an emptied group is deleted.
func (h *Hub) Leave(userID, connID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[userID]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(h.rooms, userID)
		}
	}
}

// EmitToUser delivers an event to every connection in the user's group.
// Delivery is best effort: a failed write closes and drops that connection,
// the persisted record stays authoritative.
func (h *Hub) EmitToUser(userID uuid.UUID, event string, data any) {
	h.mu.RLock()
	conns := make(map[uuid.UUID]*client, len(h.rooms[userID]))
	for id, c := range h.rooms[userID] {
		conns[id] = c
	}
	h.mu.RUnlock()

	for connID, cl := range conns {
		if err := cl.write(Envelope{Event: event, Data: data}); err != nil {
			log.Printf("Error sending %s to client %s: %v", event, userID, err)
			cl.close()
			h.Leave(userID, connID)
		}
	}
}

// BroadcastAll delivers an event to every connected client, used for presence
// status changes.
func (h *Hub) BroadcastAll(event string, data any) {
	h.mu.RLock()
	users := make([]uuid.UUID, 0, len(h.rooms))
	for id := range h.rooms {
		users = append(users, id)
	}
	h.mu.RUnlock()

	for _, userID := range users {
		h.EmitToUser(userID, event, data)
	}
}
