package hub

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/hub/types"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/repository"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/room"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

// Hub manages the rooms hosted by this server instance.
type Hub struct {
	localRooms     map[string]*room.Room // room ID -> room
	playerRooms    map[string]string     // player ID -> room ID
	register       chan *types.RegistrationRequest
	unregister     chan *player.Player
	done           chan struct{}
	gameRepo       repository.GameRepository
	playerRepo     repository.PlayerRepository
	moveCalculator room.MoveCalculator
	computerDelay  time.Duration
}

// NewHub creates a new hub.
func NewHub(gameRepo repository.GameRepository, playerRepo repository.PlayerRepository, calculator room.MoveCalculator, computerDelay time.Duration) *Hub {
	return &Hub{
		localRooms:     make(map[string]*room.Room),
		playerRooms:    make(map[string]string),
		register:       make(chan *types.RegistrationRequest),
		unregister:     make(chan *player.Player, 16),
		done:           make(chan struct{}),
		gameRepo:       gameRepo,
		playerRepo:     playerRepo,
		moveCalculator: calculator,
		computerDelay:  computerDelay,
	}
}

// Run processes registrations until ctx is cancelled, then stops every room.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Hub stopping, closing rooms.", "rooms", len(h.localRooms))
			for id, r := range h.localRooms {
				r.Stop()
				delete(h.localRooms, id)
			}
			clear(h.playerRooms)
			return

		case req := <-h.register:
			h.handleRegistration(req)

		case p := <-h.unregister:
			h.handleUnregister(p)
		}
	}
}

// handleUnregister drops the room a player left. A player that already
// reconnected into a newer room keeps that room.
func (h *Hub) handleUnregister(p *player.Player) {
	roomID, ok := h.playerRooms[p.ID]
	if !ok {
		return
	}
	r, ok := h.localRooms[roomID]
	if !ok || r.Player != p {
		return
	}

	r.Stop()
	delete(h.localRooms, roomID)
	delete(h.playerRooms, p.ID)
	slog.Info("Room closed", "room.id", roomID, "player.id", p.ID)
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Done is closed once Run has returned and no more registrations are taken.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Unregister returns the unregister channel.
func (h *Hub) Unregister() chan<- *player.Player {
	return h.unregister
}
