package room

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"ctchen222/Tic-Tac-Toe-Minimax/pkg/proto"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SendInitialState sends the mark assignment and the current board. If the
// computer is due to move (it opens, or a resumed game stopped on its turn)
// it moves right away.
func (r *Room) SendInitialState(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.SendInitialState", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.id", r.Player.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Could not get initial game state", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not get initial game state")
		r.sendError(ctx, "game not found")
		return
	}

	r.send(ctx, &proto.PlayerAssignmentMessage{
		Type:         proto.TypeAssignment,
		PlayerID:     r.Player.ID,
		GameID:       r.ID,
		Mark:         game.Player,
		ComputerMark: game.Computer,
	})
	r.sendUpdate(ctx, state)

	if !state.Outcome.Over() && state.CurrentTurn == game.Computer {
		r.playComputerTurn(ctx, state)
	}
}

// ReadPump pumps messages from the websocket connection to the room's incomingMoves channel.
func (r *Room) ReadPump() {
	ctx, span := tracer.Start(context.Background(), "room.ReadPump", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	// Status must be stored before incomingMoves closes; run exits on the close.
	defer func() {
		r.Player.MarkDisconnected()
		if r.replaced.Load() {
			// The player's new connection owns the stored status now.
			slog.InfoContext(ctx, "Connection replaced.", "player.id", r.Player.ID, "room.id", r.ID)
		} else {
			if err := r.playerRepo.UpdateConnectionStatus(ctx, r.Player.ID, player.StatusDisconnected); err != nil {
				slog.ErrorContext(ctx, "Failed to set player status to disconnected", "player.id", r.Player.ID, "error", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, "Failed to set player status to disconnected")
			}
			slog.InfoContext(ctx, "Player disconnected.", "player.id", r.Player.ID, "room.id", r.ID)
		}
		close(r.incomingMoves)
	}()

	for {
		_, msg, err := r.Player.Conn.ReadMessage()
		if err != nil {
			slog.WarnContext(ctx, "Player connection error", "player.id", r.Player.ID, "room.id", r.ID, "error", err)
			return
		}
		select {
		case r.incomingMoves <- msg:
		case <-r.Done:
			return
		}
	}
}

func (r *Room) sendUpdate(ctx context.Context, state *game.GameStateDTO) {
	r.send(ctx, proto.NewUpdateMessage(state))
}

func (r *Room) sendError(ctx context.Context, reason string) {
	r.send(ctx, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}

// send writes a JSON message to the player.
func (r *Room) send(ctx context.Context, message any) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		return
	}
	if err := r.write(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "player.id", r.Player.ID, "error", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

// write serialises writes; a websocket allows one concurrent writer.
func (r *Room) write(messageType int, data []byte) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.Player.Conn.WriteMessage(messageType, data)
}
