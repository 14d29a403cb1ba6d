package service

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/models"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/repository"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/db"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestService(t *testing.T) UserService {
	t.Helper()
	ctx := context.Background()

	pool, err := db.Connect(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	require.NoError(t, db.InitializeDB(ctx, pool))

	return NewUserService(repository.NewUserRepository(pool), testSecret)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	require.NoError(t, s.Register(ctx, &models.RegisterRequest{Username: "alice", Password: "hunter22"}))

	t.Run("Duplicate username", func(t *testing.T) {
		err := s.Register(ctx, &models.RegisterRequest{Username: "alice", Password: "another1"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("Valid credentials", func(t *testing.T) {
		token, playerID, err := s.Login(ctx, &models.LoginRequest{Username: "alice", Password: "hunter22"})
		require.NoError(t, err)
		assert.Equal(t, "user-1", playerID)

		got, err := s.ParseToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, playerID, got)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := s.Login(ctx, &models.LoginRequest{Username: "alice", Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, _, err := s.Login(ctx, &models.LoginRequest{Username: "bob", Password: "hunter22"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestParseTokenRejects(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	require.NoError(t, s.Register(ctx, &models.RegisterRequest{Username: "alice", Password: "hunter22"}))

	sign := func(secret string, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not-a-token"},
		{name: "Other secret", token: sign("another-secret", jwt.MapClaims{"sub": "user-1", "exp": future})},
		{name: "Expired", token: sign(testSecret, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})},
		{name: "No expiry", token: sign(testSecret, jwt.MapClaims{"sub": "user-1"})},
		{name: "No subject", token: sign(testSecret, jwt.MapClaims{"exp": future})},
		{name: "Unknown user", token: sign(testSecret, jwt.MapClaims{"sub": "user-2", "exp": future})},
		{name: "Guest subject", token: sign(testSecret, jwt.MapClaims{"sub": uuid.New().String(), "exp": future})},
		{name: "Malformed user ID", token: sign(testSecret, jwt.MapClaims{"sub": "user-abc", "exp": future})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParseToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGuestLogin(t *testing.T) {
	s := newTestService(t)

	id, err := s.GuestLogin(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}
