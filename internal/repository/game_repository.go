package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Games expire once nobody has touched them for this long.
const gameTTL = 24 * time.Hour

const maxTxRetries = 3

var ErrGameNotFound = errors.New("game not found")

//go:generate mockgen -source=game_repository.go -destination=mocks/mock_game_repository.go -package=mocks

// GameRepository defines the interface for game session operations.
type GameRepository interface {
	Create(ctx context.Context, id, playerID string, first game.Mark) (*game.GameStateDTO, error)
	FindByID(ctx context.Context, id string) (*game.GameStateDTO, error)
	ApplyMove(ctx context.Context, id string, mark game.Mark, index int) (*game.GameStateDTO, error)
	Reset(ctx context.Context, id string, first game.Mark) (*game.GameStateDTO, error)
	Delete(ctx context.Context, id string) error
}

type redisGameRepository struct {
	rdb *redis.Client
}

// NewGameRepository creates a new Redis-based GameRepository.
func NewGameRepository(rdb *redis.Client) GameRepository {
	return &redisGameRepository{rdb: rdb}
}

func gameKey(id string) string {
	return fmt.Sprintf("game:%s", id)
}

// Create stores a fresh game with an empty board.
func (r *redisGameRepository) Create(ctx context.Context, id, playerID string, first game.Mark) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Create")
	defer span.End()

	g := game.NewGame(first)
	state := &game.GameStateDTO{
		ID:          id,
		PlayerID:    playerID,
		Board:       g.Board,
		CurrentTurn: g.CurrentTurn,
		Outcome:     g.Outcome,
		FirstMover:  g.FirstMover,
		LastMove:    g.LastMove,
	}
	fields, err := encodeState(state)
	if err != nil {
		return nil, err
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, gameKey(id), fields)
	pipe.Expire(ctx, gameKey(id), gameTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create game in redis: %w", err)
	}
	return state, nil
}

// FindByID retrieves the current game state from Redis.
func (r *redisGameRepository) FindByID(ctx context.Context, id string) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.FindByID")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game state from redis: %w", err)
	}
	return decodeState(id, data)
}

// ApplyMove places mark at index. The read-check-write runs under WATCH so
// concurrent writers to the same game cannot interleave.
func (r *redisGameRepository) ApplyMove(ctx context.Context, id string, mark game.Mark, index int) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.ApplyMove")
	defer span.End()

	return r.update(ctx, id, func(g *game.Game) error {
		return g.Move(mark, index)
	})
}

// Reset clears the board of an existing game for a replay.
func (r *redisGameRepository) Reset(ctx context.Context, id string, first game.Mark) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Reset")
	defer span.End()

	return r.update(ctx, id, func(g *game.Game) error {
		g.Reset(first)
		return nil
	})
}

// Delete removes a game.
func (r *redisGameRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Delete")
	defer span.End()

	return r.rdb.Del(ctx, gameKey(id)).Err()
}

func (r *redisGameRepository) update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.GameStateDTO, error) {
	key := gameKey(id)
	var state *game.GameStateDTO

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		current, err := decodeState(id, data)
		if err != nil {
			return err
		}

		g := current.Game()
		if err := fn(g); err != nil {
			return err
		}
		next := &game.GameStateDTO{
			ID:          id,
			PlayerID:    current.PlayerID,
			Board:       g.Board,
			CurrentTurn: g.CurrentTurn,
			Outcome:     g.Outcome,
			FirstMover:  g.FirstMover,
			LastMove:    g.LastMove,
		}
		fields, err := encodeState(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.Expire(ctx, key, gameTTL)
			return nil
		})
		if err == nil {
			state = next
		}
		return err
	}

	var err error
	for range maxTxRetries {
		err = r.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func encodeState(s *game.GameStateDTO) (map[string]any, error) {
	boardJSON, err := json.Marshal(s.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}
	return map[string]any{
		game.FieldBoard:      string(boardJSON),
		game.FieldPlayerID:   s.PlayerID,
		game.FieldNextTurn:   string(s.CurrentTurn),
		game.FieldStatus:     string(s.Outcome.Status),
		game.FieldWinner:     string(s.Outcome.Winner),
		game.FieldFirstMover: string(s.FirstMover),
		game.FieldLastMove:   s.LastMove,
	}, nil
}

func decodeState(id string, data map[string]string) (*game.GameStateDTO, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	var board game.Board
	if err := json.Unmarshal([]byte(data[game.FieldBoard]), &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}

	lastMove := -1
	if v := data[game.FieldLastMove]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last move: %w", err)
		}
		lastMove = n
	}

	return &game.GameStateDTO{
		ID:          id,
		PlayerID:    data[game.FieldPlayerID],
		Board:       board,
		CurrentTurn: game.Mark(data[game.FieldNextTurn]),
		Outcome: game.Outcome{
			Status: game.Status(data[game.FieldStatus]),
			Winner: game.Mark(data[game.FieldWinner]),
		},
		FirstMover: game.Mark(data[game.FieldFirstMover]),
		LastMove:   lastMove,
	}, nil
}
