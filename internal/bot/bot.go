package bot

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "bot"

var tracer = otel.Tracer(instrumentationName)

// Selector picks the computer's move with SelectMove and reports each search
// as a span and metrics.
// It implements the room.MoveCalculator interface.
type Selector struct {
	nodes    metric.Int64Histogram
	duration metric.Float64Histogram
}

// NewSelector creates a Selector using the global meter provider.
func NewSelector() (*Selector, error) {
	meter := otel.Meter(instrumentationName)

	nodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited by one move search"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("bot.search.duration",
		metric.WithDescription("Wall time of one move search"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Selector{nodes: nodes, duration: duration}, nil
}

// SelectMove returns the same index as the package-level SelectMove.
func (s *Selector) SelectMove(ctx context.Context, board game.Board) (int, error) {
	ctx, span := tracer.Start(ctx, "bot.SelectMove", trace.WithAttributes(
		attribute.String("board", board.String()),
		attribute.Int("board.empty", len(board.EmptyCells())),
	))
	defer span.End()

	start := time.Now()
	index, nodes, err := search(board)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move search failed")
		return -1, err
	}

	s.nodes.Record(ctx, int64(nodes))
	s.duration.Record(ctx, elapsed)
	span.SetAttributes(attribute.Int("move.index", index), attribute.Int("search.nodes", nodes))
	slog.DebugContext(ctx, "Computer selected move", "board", board.String(), "index", index, "nodes", nodes, "elapsed_ms", elapsed)

	return index, nil
}
