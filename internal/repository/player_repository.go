package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository")

const (
	fieldGameID           = "game_id"
	fieldConnectionStatus = "connection_status"
	fieldLastSeen         = "last_seen"
)

//go:generate mockgen -source=player_repository.go -destination=mocks/mock_player_repository.go -package=mocks

// Presence is the stored connection state of a player.
type Presence struct {
	Status   player.PlayerStatus
	LastSeen time.Time
}

// PlayerRepository maps players to their current game so a reloaded page
// resumes where it left off.
type PlayerRepository interface {
	FindGame(ctx context.Context, id string) (gameID string, err error)
	AssignGame(ctx context.Context, id, gameID string) error
	UpdateConnectionStatus(ctx context.Context, id string, status player.PlayerStatus) error
	FindPresence(ctx context.Context, id string) (*Presence, error)
}

type redisPlayerRepository struct {
	rdb *redis.Client
}

// NewPlayerRepository creates a new Redis-based PlayerRepository.
func NewPlayerRepository(rdb *redis.Client) PlayerRepository {
	return &redisPlayerRepository{
		rdb: rdb,
	}
}

func playerKey(id string) string {
	return fmt.Sprintf("player:%s", id)
}

// FindGame returns the player's game ID, or "" if there is none.
func (r *redisPlayerRepository) FindGame(ctx context.Context, id string) (string, error) {
	ctx, span := tracer.Start(ctx, "PlayerRepository.FindGame")
	defer span.End()

	gameID, err := r.rdb.HGet(ctx, playerKey(id), fieldGameID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return gameID, err
}

// AssignGame records the player's current game.
func (r *redisPlayerRepository) AssignGame(ctx context.Context, id, gameID string) error {
	ctx, span := tracer.Start(ctx, "PlayerRepository.AssignGame")
	defer span.End()

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, playerKey(id),
		fieldGameID, gameID,
		fieldConnectionStatus, string(player.StatusConnected),
		fieldLastSeen, time.Now().Unix(),
	)
	pipe.Expire(ctx, playerKey(id), gameTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// UpdateConnectionStatus stores the connection status and stamps last_seen.
func (r *redisPlayerRepository) UpdateConnectionStatus(ctx context.Context, id string, status player.PlayerStatus) error {
	ctx, span := tracer.Start(ctx, "PlayerRepository.UpdateConnectionStatus")
	defer span.End()

	return r.rdb.HSet(ctx, playerKey(id),
		fieldConnectionStatus, string(status),
		fieldLastSeen, time.Now().Unix(),
	).Err()
}

// FindPresence returns the stored connection state, or nil for an unknown player.
func (r *redisPlayerRepository) FindPresence(ctx context.Context, id string) (*Presence, error) {
	ctx, span := tracer.Start(ctx, "PlayerRepository.FindPresence")
	defer span.End()

	data, err := r.rdb.HMGet(ctx, playerKey(id), fieldConnectionStatus, fieldLastSeen).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player presence from redis: %w", err)
	}
	status, _ := data[0].(string)
	if status == "" {
		return nil, nil
	}

	presence := &Presence{Status: player.PlayerStatus(status)}
	if raw, ok := data[1].(string); ok {
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid last_seen %q: %w", raw, err)
		}
		presence.LastSeen = time.Unix(unix, 0)
	}
	return presence, nil
}
