package credentials

import (
	"context"
	"encoding/base64"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdeck/internal/auth"
	"agentdeck/internal/database"
	"agentdeck/internal/models"
	"agentdeck/internal/secrets"
)

type fixture struct {
	resolver *Resolver
	auth     *auth.Service
	keys     *database.APIKeyRepo
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := database.Open(context.Background(), database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	raw, err := base64.StdEncoding.DecodeString("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	require.NoError(t, err)
	keyring, err := secrets.NewKeyring("test", map[string][]byte{"test": raw})
	require.NoError(t, err)

	require.NoError(t, database.NewUserRepo(store).EnsureDefaultUser(context.Background()))

	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	authSvc := auth.NewService(database.NewUserRepo(store), database.NewSessionRepo(store), tokens, zerolog.Nop())
	keys := database.NewAPIKeyRepo(store, keyring)

	return &fixture{
		resolver: NewResolver(keys, authSvc),
		auth:     authSvc,
		keys:     keys,
	}
}

func (f *fixture) storeKey(t *testing.T, userID, value string) {
	t.Helper()
	_, err := f.keys.Upsert(context.Background(), &models.APIKey{
		UserID:   userID,
		Provider: models.DefaultProvider,
		Name:     "stored",
		KeyValue: value,
	})
	require.NoError(t, err)
}

func TestResolvePrecedence(t *testing.T) {
	f := setup(t)
	f.storeKey(t, models.DefaultUserID, "sk-stored")

	tests := []struct {
		name       string
		authz      string
		xAPIKey    string
		query      string
		wantKey    string
		wantSource string
	}{
		{
			name:       "authorization header wins over everything",
			authz:      "Bearer sk-bearer",
			xAPIKey:    "sk-header",
			query:      "?api_key=sk-query",
			wantKey:    "sk-bearer",
			wantSource: SourceAuthorization,
		},
		{
			name:       "x-api-key beats query and stored",
			xAPIKey:    "sk-header",
			query:      "?api_key=sk-query",
			wantKey:    "sk-header",
			wantSource: SourceHeader,
		},
		{
			name:       "query beats stored",
			query:      "?api_key=sk-query",
			wantKey:    "sk-query",
			wantSource: SourceQuery,
		},
		{
			name:       "stored key is the last resort",
			wantKey:    "sk-stored",
			wantSource: SourceStored,
		},
		{
			name:       "non-bearer authorization falls through",
			authz:      "Basic dXNlcjpwYXNz",
			wantKey:    "sk-stored",
			wantSource: SourceStored,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/chat"+tt.query, nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			if tt.xAPIKey != "" {
				req.Header.Set("x-api-key", tt.xAPIKey)
			}

			cred, err := f.resolver.Resolve(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cred.Key)
			assert.Equal(t, tt.wantSource, cred.Source)
		})
	}
}

func TestResolveNoKeyAnywhere(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest("POST", "/chat", nil)
	_, err := f.resolver.Resolve(context.Background(), req)
	require.ErrorIs(t, err, ErrNoAPIKey)

	// The message has to point the caller at every source.
	for _, hint := range []string{"Authorization header", "x-api-key header", "api_key query parameter", "settings"} {
		assert.Contains(t, err.Error(), hint)
	}
}

func TestResolveUsesSessionUsersStoredKey(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, models.SignupRequest{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)
	session, err := f.auth.CreateSession(ctx, user.ID)
	require.NoError(t, err)

	f.storeKey(t, models.DefaultUserID, "sk-default")
	f.storeKey(t, user.ID, "sk-alice")

	req := httptest.NewRequest("POST", "/chat", nil)
	req.Header.Set(auth.TokenHeader, session.Token)

	cred, err := f.resolver.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "sk-alice", cred.Key)
	assert.Equal(t, SourceStored, cred.Source)
}

func TestResolveInvalidSessionFallsBackToDefaultUser(t *testing.T) {
	f := setup(t)
	f.storeKey(t, models.DefaultUserID, "sk-default")

	req := httptest.NewRequest("POST", "/chat", nil)
	req.Header.Set(auth.TokenHeader, "garbage-token")

	cred, err := f.resolver.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "sk-default", cred.Key)
}
