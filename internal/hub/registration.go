package hub

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/hub/types"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/repository"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/room"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleRegistration attaches a connected player to a room. The player's
// unfinished game is resumed if the repository still has it; otherwise a new
// game is created.
func (h *Hub) handleRegistration(req *types.RegistrationRequest) {
	ctx := req.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	p := req.Player

	ctx, span := tracer.Start(ctx, "hub.handleRegistration", trace.WithAttributes(
		attribute.String("player.id", p.ID),
	))
	defer span.End()

	// A second connection for the same player replaces the first.
	replaced := false
	if oldID, ok := h.playerRooms[p.ID]; ok {
		if old, ok := h.localRooms[oldID]; ok {
			slog.InfoContext(ctx, "Player reconnected, replacing room handler", "player.id", p.ID, "room.id", oldID)
			old.Replace()
			delete(h.localRooms, oldID)
			replaced = true
		}
		delete(h.playerRooms, p.ID)
	}

	h.reportPresence(ctx, span, p.ID, replaced)

	gameID, err := h.resumableGame(ctx, p.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to look up player's game", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to look up player's game")
		p.Conn.Close()
		return
	}

	if gameID == "" {
		gameID, err = h.createGame(ctx, p.ID, req.First)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to create game")
			p.Conn.Close()
			return
		}
	} else {
		slog.InfoContext(ctx, "Resuming game", "player.id", p.ID, "room.id", gameID)
	}
	span.SetAttributes(attribute.String("room.id", gameID))

	if err := h.playerRepo.UpdateConnectionStatus(ctx, p.ID, player.StatusConnected); err != nil {
		slog.WarnContext(ctx, "Failed to set player status to connected", "player.id", p.ID, "error", err)
	}

	newRoom := room.NewRoom(gameID, p, h.gameRepo, h.playerRepo, h.moveCalculator, h.computerDelay)
	h.localRooms[gameID] = newRoom
	h.playerRooms[p.ID] = gameID
	go newRoom.Start(context.Background(), h.unregister)

	slog.InfoContext(ctx, "Room handler started", "player.id", p.ID, "room.id", gameID)
}

// resumableGame returns the player's stored game ID, or "" when there is
// none, it has expired or it is finished. A finished game is deleted so the
// player starts fresh.
func (h *Hub) resumableGame(ctx context.Context, playerID string) (string, error) {
	gameID, err := h.playerRepo.FindGame(ctx, playerID)
	if err != nil || gameID == "" {
		return "", err
	}

	state, err := h.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			slog.InfoContext(ctx, "Stored game has expired", "player.id", playerID, "room.id", gameID)
			return "", nil
		}
		return "", err
	}

	if state.Outcome.Over() {
		if err := h.gameRepo.Delete(ctx, gameID); err != nil {
			slog.WarnContext(ctx, "Failed to delete finished game", "room.id", gameID, "error", err)
		}
		slog.InfoContext(ctx, "Stored game is finished, starting a new one", "player.id", playerID, "room.id", gameID)
		return "", nil
	}
	return gameID, nil
}

// reportPresence records what the store last knew about the player's
// connection. A "connected" record that no local room accounts for means the
// previous server instance went away without marking the player disconnected.
func (h *Hub) reportPresence(ctx context.Context, span trace.Span, playerID string, replaced bool) {
	presence, err := h.playerRepo.FindPresence(ctx, playerID)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read player presence", "player.id", playerID, "error", err)
		return
	}
	if presence == nil {
		span.SetAttributes(attribute.Bool("player.returning", false))
		return
	}

	span.SetAttributes(
		attribute.Bool("player.returning", true),
		attribute.String("player.previous_status", string(presence.Status)),
	)
	switch presence.Status {
	case player.StatusDisconnected:
		slog.InfoContext(ctx, "Player returned", "player.id", playerID, "away", time.Since(presence.LastSeen).Round(time.Second))
	case player.StatusConnected:
		if replaced {
			return
		}
		slog.WarnContext(ctx, "Player was still recorded as connected", "player.id", playerID, "last_seen", presence.LastSeen)
	}
}

func (h *Hub) createGame(ctx context.Context, playerID string, first game.Mark) (string, error) {
	gameID := uuid.New().String()
	if _, err := h.gameRepo.Create(ctx, gameID, playerID, first); err != nil {
		slog.ErrorContext(ctx, "Failed to create game", "player.id", playerID, "room.id", gameID, "error", err)
		return "", err
	}
	if err := h.playerRepo.AssignGame(ctx, playerID, gameID); err != nil {
		slog.ErrorContext(ctx, "Failed to assign game to player", "player.id", playerID, "room.id", gameID, "error", err)
		return "", err
	}
	slog.InfoContext(ctx, "Game created", "player.id", playerID, "room.id", gameID, "first", first)
	return gameID, nil
}
