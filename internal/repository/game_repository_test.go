package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container tests")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(connStr)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestGameRepository(t *testing.T) {
	rdb := newTestRedis(t)
	repo := NewGameRepository(rdb)
	ctx := context.Background()

	t.Run("Create and find", func(t *testing.T) {
		created, err := repo.Create(ctx, "g1", "p1", game.Player)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, created, found)
		assert.Equal(t, game.Board{}, found.Board)
		assert.Equal(t, game.Player, found.CurrentTurn)
		assert.Equal(t, game.StatusInProgress, found.Outcome.Status)
		assert.Equal(t, -1, found.LastMove)

		ttl, err := rdb.TTL(ctx, gameKey("g1")).Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)
	})

	t.Run("Missing game", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrGameNotFound)

		_, err = repo.ApplyMove(ctx, "nope", game.Player, 0)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Apply moves until a win", func(t *testing.T) {
		_, err := repo.Create(ctx, "g2", "p1", game.Player)
		require.NoError(t, err)

		moves := []struct {
			mark  game.Mark
			index int
		}{
			{game.Player, 0}, {game.Computer, 3}, {game.Player, 1}, {game.Computer, 4}, {game.Player, 2},
		}
		var state *game.GameStateDTO
		for _, m := range moves {
			state, err = repo.ApplyMove(ctx, "g2", m.mark, m.index)
			require.NoError(t, err)
		}
		assert.Equal(t, game.Outcome{Status: game.StatusWin, Winner: game.Player}, state.Outcome)
		assert.Equal(t, 2, state.LastMove)

		found, err := repo.FindByID(ctx, "g2")
		require.NoError(t, err)
		assert.Equal(t, state, found)

		_, err = repo.ApplyMove(ctx, "g2", game.Computer, 5)
		assert.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("Rejected move leaves state unchanged", func(t *testing.T) {
		_, err := repo.Create(ctx, "g3", "p1", game.Player)
		require.NoError(t, err)
		_, err = repo.ApplyMove(ctx, "g3", game.Player, 4)
		require.NoError(t, err)

		_, err = repo.ApplyMove(ctx, "g3", game.Computer, 4)
		assert.ErrorIs(t, err, game.ErrCellOccupied)
		_, err = repo.ApplyMove(ctx, "g3", game.Player, 0)
		assert.ErrorIs(t, err, game.ErrNotYourTurn)

		found, err := repo.FindByID(ctx, "g3")
		require.NoError(t, err)
		assert.Equal(t, "....X....", found.Board.String())
	})

	t.Run("Concurrent moves on one cell", func(t *testing.T) {
		_, err := repo.Create(ctx, "g4", "p1", game.Player)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = repo.ApplyMove(ctx, "g4", game.Player, i)
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)

		found, err := repo.FindByID(ctx, "g4")
		require.NoError(t, err)
		assert.Len(t, found.Board.EmptyCells(), 8)
	})

	t.Run("Reset", func(t *testing.T) {
		state, err := repo.Reset(ctx, "g2", game.Computer)
		require.NoError(t, err)
		assert.Equal(t, game.Board{}, state.Board)
		assert.Equal(t, game.Computer, state.CurrentTurn)
		assert.Equal(t, "p1", state.PlayerID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "g1"))
		_, err := repo.FindByID(ctx, "g1")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestPlayerRepository(t *testing.T) {
	rdb := newTestRedis(t)
	repo := NewPlayerRepository(rdb)
	ctx := context.Background()

	gameID, err := repo.FindGame(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, gameID)

	require.NoError(t, repo.AssignGame(ctx, "p1", "g1"))
	gameID, err = repo.FindGame(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "g1", gameID)

	presence, err := repo.FindPresence(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, presence)
	assert.Equal(t, player.StatusConnected, presence.Status)

	before := time.Now().Add(-time.Second)
	require.NoError(t, repo.UpdateConnectionStatus(ctx, "p1", player.StatusDisconnected))
	presence, err = repo.FindPresence(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, presence)
	assert.Equal(t, player.StatusDisconnected, presence.Status)
	assert.False(t, presence.LastSeen.Before(before.Truncate(time.Second)))

	unknown, err := repo.FindPresence(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}
