package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdeck/internal/models"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	store := setupStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "alice")
	require.NotEmpty(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsActive)
}

func TestUserRepoGetByUsernameOrEmail(t *testing.T) {
	store := setupStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "bob")

	byUsername, err := repo.GetByUsernameOrEmail(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.GetByUsernameOrEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByUsernameOrEmail(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepoGetByUsernameOrEmailSkipsInactive(t *testing.T) {
	store := setupStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	user := &models.User{
		Username:     "ghost",
		Email:        "ghost@example.com",
		PasswordHash: "x",
		IsActive:     false,
	}
	require.NoError(t, repo.Create(ctx, user))

	_, err := repo.GetByUsernameOrEmail(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepoExists(t *testing.T) {
	store := setupStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	createUser(t, store, "carol")

	taken, err := repo.ExistsByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEnsureDefaultUserIdempotent(t *testing.T) {
	store := setupStore(t)
	repo := NewUserRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.EnsureDefaultUser(ctx))
	require.NoError(t, repo.EnsureDefaultUser(ctx))

	user, err := repo.GetByID(ctx, models.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, "default", user.Username)
}
