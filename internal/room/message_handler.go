package room

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/validator"
	"ctchen222/Tic-Tac-Toe-Minimax/pkg/proto"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var errPositionRequired = errors.New("position is required")

// HandleMessage handles a message from the player. It acts as a dispatcher.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		r.sendError(ctx, "malformed message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.sendError(ctx, "invalid message")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, &message)
	case proto.TypeReset:
		r.handleReset(ctx, &message)
	}
}

// handleMove applies the player's move and, if the game goes on, answers it.
func (r *Room) handleMove(ctx context.Context, message *proto.ClientToServerMessage) {
	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer moveSpan.End()

	if message.Position == nil {
		moveSpan.RecordError(errPositionRequired)
		moveSpan.SetStatus(codes.Error, "Missing position")
		r.sendError(ctx, errPositionRequired.Error())
		return
	}
	moveSpan.SetAttributes(attribute.Int("move.index", *message.Position))

	state, err := r.gameRepo.ApplyMove(ctx, r.ID, game.Player, *message.Position)
	if err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", r.Player.ID, "error", err)
		moveSpan.SetAttributes(attribute.Bool("move.valid", false))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		r.sendError(ctx, err.Error())
		return
	}
	moveSpan.SetAttributes(attribute.Bool("move.valid", true))

	r.sendUpdate(ctx, state)
	r.advance(ctx, state)
}

// handleReset starts a new game in the same room.
func (r *Room) handleReset(ctx context.Context, message *proto.ClientToServerMessage) {
	ctx, span := tracer.Start(ctx, "room.handleReset", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("game.first", message.First),
	))
	defer span.End()

	state, err := r.gameRepo.Reset(ctx, r.ID, game.ParseFirstMover(message.First))
	if err != nil {
		slog.ErrorContext(ctx, "failed to reset game", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to reset game")
		r.sendError(ctx, "could not reset game")
		return
	}

	slog.InfoContext(ctx, "Game reset", "room.id", r.ID, "first", state.FirstMover)
	r.sendUpdate(ctx, state)
	r.advance(ctx, state)
}

// advance records a finished game or lets the computer move when it is its turn.
func (r *Room) advance(ctx context.Context, state *game.GameStateDTO) {
	if state.Outcome.Over() {
		r.recordFinished(ctx, state)
		return
	}
	if state.CurrentTurn == game.Computer {
		r.playComputerTurn(ctx, state)
	}
}

// playComputerTurn asks the move calculator for the computer's move and applies it.
func (r *Room) playComputerTurn(ctx context.Context, state *game.GameStateDTO) {
	ctx, span := tracer.Start(ctx, "room.playComputerTurn", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if r.computerDelay > 0 {
		select {
		case <-time.After(r.computerDelay):
		case <-r.Done:
			return
		}
	}

	index, err := r.moveCalculator.SelectMove(ctx, state.Board)
	if err != nil {
		slog.ErrorContext(ctx, "computer could not select a move", "room.id", r.ID, "board", state.Board.String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move selection failed")
		r.sendError(ctx, "computer could not move")
		return
	}

	next, err := r.gameRepo.ApplyMove(ctx, r.ID, game.Computer, index)
	if err != nil {
		slog.ErrorContext(ctx, "failed to apply computer move", "room.id", r.ID, "index", index, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to apply computer move")
		r.sendError(ctx, "computer could not move")
		return
	}
	span.SetAttributes(attribute.Int("move.index", index))

	r.sendUpdate(ctx, next)
	if next.Outcome.Over() {
		r.recordFinished(ctx, next)
	}
}

func (r *Room) recordFinished(ctx context.Context, state *game.GameStateDTO) {
	outcome := string(state.Outcome.Status)
	if state.Outcome.Status == game.StatusWin {
		outcome += "_" + string(state.Outcome.Winner)
	}
	gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	slog.InfoContext(ctx, "Game finished", "room.id", r.ID, "status", state.Outcome.Status, "winner", state.Outcome.Winner)
}
