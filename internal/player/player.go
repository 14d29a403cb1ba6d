package player

import (
	"sync"
	"time"
)

// PlayerStatus is the connection state of a player.
type PlayerStatus string

const (
	StatusConnected    PlayerStatus = "connected"
	StatusDisconnected PlayerStatus = "disconnected"
)

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player represents the human side of a game. Status and LastSeen are
// written by the read pump and read by the room loop.
type Player struct {
	ID   string
	Conn Connection

	mu       sync.RWMutex
	status   PlayerStatus
	lastSeen time.Time
}

// NewPlayer creates a connected player.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{
		ID:       id,
		Conn:     conn,
		status:   StatusConnected,
		lastSeen: time.Now(),
	}
}

// Status returns the current connection state.
func (p *Player) Status() PlayerStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// LastSeen returns when the player was last known to be connected.
func (p *Player) LastSeen() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSeen
}

// MarkDisconnected records that the connection dropped.
func (p *Player) MarkDisconnected() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = StatusDisconnected
	p.lastSeen = time.Now()
}
