package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/models"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	pool, err := db.Connect(ctx, ":memory:")
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.InitializeDB(ctx, pool))

	repo := NewUserRepository(pool)

	user := &models.User{Username: "alice"}
	require.NoError(t, repo.CreateUser(ctx, user, "hunter22"))
	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("hunter22")))

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	noID, err := repo.GetUserByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, noID)

	missing, err := repo.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.CreateUser(ctx, &models.User{Username: "alice"}, "another1")
	assert.Error(t, err, "usernames are unique")
}
