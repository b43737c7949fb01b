package chatws

import (
	"sync"

	"github.com/google/uuid"
)

// Presence tracks which users currently hold at least one live connection. A
// user may have several simultaneous connections (tabs, devices); online
// status is a function of set cardinality, not of any single connection.
type Presence struct {
	mu    sync.Mutex
	conns map[uuid.UUID]map[uuid.UUID]struct{}
}

func NewPresence() *Presence {
	return &Presence{conns: make(map[uuid.UUID]map[uuid.UUID]struct{})}
}

// Register adds a connection to the user's set and reports whether the user
// just came online (set transitioned from empty to non-empty).
func (p *Presence) Register(userID, connID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.conns[userID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		p.conns[userID] = set
	}
	cameOnline := len(set) == 0
	set[connID] = struct{}{}
	return cameOnline
}

// Unregister removes a connection and reports whether the user went offline
// (set transitioned to empty). The emptied record is garbage-collected.
func (p *Presence) Unregister(userID, connID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.conns[userID]
	if !ok {
		return false
	}
	if _, ok := set[connID]; !ok {
		return false
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(p.conns, userID)
		return true
	}
	return false
}

func (p *Presence) IsOnline(userID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conns[userID]) > 0
}

// OnlineUsers lists every user id with at least one live connection.
func (p *Presence) OnlineUsers() []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()

	users := make([]uuid.UUID, 0, len(p.conns))
	for id := range p.conns {
		users = append(users, id)
	}
	return users
}
