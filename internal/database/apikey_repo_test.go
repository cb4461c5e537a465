package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdeck/internal/models"
)

func TestAPIKeyRepoUpsertReplacesValue(t *testing.T) {
	store := setupStore(t)
	repo := NewAPIKeyRepo(store, setupKeyring(t))
	ctx := context.Background()

	user := createUser(t, store, "alice")

	first, err := repo.Upsert(ctx, &models.APIKey{
		UserID:   user.ID,
		Provider: models.DefaultProvider,
		Name:     "My Key",
		KeyValue: "sk-or-first",
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, &models.APIKey{
		UserID:   user.ID,
		Provider: models.DefaultProvider,
		Name:     "My Key v2",
		KeyValue: "sk-or-second",
	})
	require.NoError(t, err)
	assert.Equal(t, first, second, "conflict path keeps the original row id")

	// Exactly one active row per (user, provider), holding the latest value.
	infos, err := repo.ListActive(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "My Key v2", infos[0].Name)

	key, err := repo.GetActive(ctx, user.ID, models.DefaultProvider)
	require.NoError(t, err)
	assert.Equal(t, "sk-or-second", key.KeyValue)
}

func TestAPIKeyRepoValueStoredEncrypted(t *testing.T) {
	store := setupStore(t)
	repo := NewAPIKeyRepo(store, setupKeyring(t))
	ctx := context.Background()

	user := createUser(t, store, "bob")

	_, err := repo.Upsert(ctx, &models.APIKey{
		UserID:   user.ID,
		Provider: models.DefaultProvider,
		Name:     "k",
		KeyValue: "sk-or-plaintext",
	})
	require.NoError(t, err)

	var stored string
	err = store.db.QueryRow("SELECT enc_key_value FROM api_keys WHERE user_id = ?", user.ID).Scan(&stored)
	require.NoError(t, err)
	assert.NotContains(t, stored, "sk-or-plaintext")
}

func TestAPIKeyRepoDeactivate(t *testing.T) {
	store := setupStore(t)
	repo := NewAPIKeyRepo(store, setupKeyring(t))
	ctx := context.Background()

	user := createUser(t, store, "carol")

	id, err := repo.Upsert(ctx, &models.APIKey{
		UserID:   user.ID,
		Provider: models.DefaultProvider,
		Name:     "k",
		KeyValue: "sk-or-value",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(ctx, id))

	_, err = repo.GetActive(ctx, user.ID, models.DefaultProvider)
	assert.ErrorIs(t, err, ErrAPIKeyNotFound)

	infos, err := repo.ListActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, infos)

	// Upserting again reactivates the same row.
	again, err := repo.Upsert(ctx, &models.APIKey{
		UserID:   user.ID,
		Provider: models.DefaultProvider,
		Name:     "k",
		KeyValue: "sk-or-new",
	})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	key, err := repo.GetActive(ctx, user.ID, models.DefaultProvider)
	require.NoError(t, err)
	assert.Equal(t, "sk-or-new", key.KeyValue)
}

func TestAPIKeyRepoDeactivateMissing(t *testing.T) {
	store := setupStore(t)
	repo := NewAPIKeyRepo(store, setupKeyring(t))

	err := repo.Deactivate(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrAPIKeyNotFound)
}
