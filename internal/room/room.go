package room

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/repository"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	heartbeatInterval = 10 * time.Second
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")

	gamesFinished metric.Int64Counter
)

func init() {
	var err error
	gamesFinished, err = meter.Int64Counter("room.games.finished",
		metric.WithDescription("Games that reached a win or a tie"),
	)
	if err != nil {
		panic(err)
	}
}

// MoveCalculator defines an interface for an agent that can calculate the computer's move.
type MoveCalculator interface {
	SelectMove(ctx context.Context, board game.Board) (int, error)
}

// Room hosts one game between a connected player and the computer.
// Its ID is the game ID in the repository.
type Room struct {
	ID             string
	Player         *player.Player
	gameRepo       repository.GameRepository
	playerRepo     repository.PlayerRepository
	moveCalculator MoveCalculator
	computerDelay  time.Duration
	mu             sync.Mutex
	writeMu        sync.Mutex
	incomingMoves  chan []byte
	Done           chan struct{}
	stopOnce       sync.Once
	replaced       atomic.Bool
}

// NewRoom creates a new game room. computerDelay is how long the computer
// waits before answering a move.
func NewRoom(id string, p *player.Player, gameRepo repository.GameRepository, playerRepo repository.PlayerRepository, calculator MoveCalculator, computerDelay time.Duration) *Room {
	return &Room{
		ID:             id,
		Player:         p,
		gameRepo:       gameRepo,
		playerRepo:     playerRepo,
		moveCalculator: calculator,
		computerDelay:  computerDelay,
		incomingMoves:  make(chan []byte, 10),
		Done:           make(chan struct{}),
	}
}

// Start sends the current state to the player, then runs the room until the
// connection drops or Stop is called. The player is handed to unregister on exit.
func (r *Room) Start(ctx context.Context, unregister chan<- *player.Player) {
	r.SendInitialState(ctx)
	go r.ReadPump()
	r.run()
	unregister <- r.Player
}

// Stop ends the room loop and closes the connection.
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.Done)
		if r.Player.Conn != nil {
			r.Player.Conn.Close()
		}
	})
}

// Replace stops the room because the same player connected again. The
// stored connection status is left to the new connection.
func (r *Room) Replace() {
	r.replaced.Store(true)
	r.Stop()
}

// run is the main loop for the room.
func (r *Room) run() {
	pingTicker := time.NewTicker(heartbeatInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-r.Done:
			slog.Info("Room run goroutine stopping.", "room.id", r.ID)
			return

		case msg, ok := <-r.incomingMoves:
			if !ok {
				slog.Info("Player connection closed, stopping room.", "room.id", r.ID, "player.id", r.Player.ID)
				return
			}
			r.HandleMessage(context.Background(), msg)

		case <-pingTicker.C:
			if r.Player.Status() != player.StatusConnected {
				continue
			}
			if err := r.write(websocket.PingMessage, nil); err != nil {
				slog.Warn("Failed to send ping to player, assuming disconnect", "player.id", r.Player.ID, "error", err)
			}
		}
	}
}

// IncomingMoves returns the channel for incoming player messages.
func (r *Room) IncomingMoves() chan<- []byte {
	return r.incomingMoves
}
