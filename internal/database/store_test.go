package database

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"agentdeck/internal/models"
	"agentdeck/internal/secrets"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func setupKeyring(t *testing.T) *secrets.Keyring {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	require.NoError(t, err)
	k, err := secrets.NewKeyring("test", map[string][]byte{"test": raw})
	require.NoError(t, err)
	return k
}

func createUser(t *testing.T, store *Store, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, NewUserRepo(store).Create(context.Background(), user))
	return user
}

func TestOpenRunsMigrationsOnce(t *testing.T) {
	store := setupStore(t)

	// A second migration pass over the same handle must be a no-op.
	require.NoError(t, migrate(context.Background(), store.db))

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, len(migrations), count)
}
