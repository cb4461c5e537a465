package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdeck/internal/models"
)

func TestSessionRepoLifecycle(t *testing.T) {
	store := setupStore(t)
	repo := NewSessionRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "alice")

	session := &models.Session{
		UserID:    user.ID,
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))
	require.NotEmpty(t, session.ID)

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	require.NoError(t, repo.DeleteByToken(ctx, "tok-1"))

	_, err = repo.GetByToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepoExpiredIsRemovedOnRead(t *testing.T) {
	store := setupStore(t)
	repo := NewSessionRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "bob")

	session := &models.Session{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, session))

	_, err := repo.GetByToken(ctx, "stale")
	assert.ErrorIs(t, err, ErrSessionExpired)

	// The lazy delete means a second read no longer finds the row.
	_, err = repo.GetByToken(ctx, "stale")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepoDeleteByTokenIdempotent(t *testing.T) {
	store := setupStore(t)
	repo := NewSessionRepo(store)

	assert.NoError(t, repo.DeleteByToken(context.Background(), "never-existed"))
}

func TestSessionRepoDeleteExpired(t *testing.T) {
	store := setupStore(t)
	repo := NewSessionRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "carol")

	for _, s := range []*models.Session{
		{UserID: user.ID, Token: "live", ExpiresAt: time.Now().Add(time.Hour)},
		{UserID: user.ID, Token: "dead-1", ExpiresAt: time.Now().Add(-time.Hour)},
		{UserID: user.ID, Token: "dead-2", ExpiresAt: time.Now().Add(-time.Minute)},
	} {
		require.NoError(t, repo.Create(ctx, s))
	}

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.GetByToken(ctx, "live")
	assert.NoError(t, err)
}
