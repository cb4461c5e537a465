package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/agentdeck.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/tmp/agentdeck.db", cfg.DB.Path)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.True(t, cfg.Session.InsecureDefault)
	assert.True(t, cfg.Crypto.InsecureDefault)
	assert.Len(t, cfg.Crypto.Keys[cfg.Crypto.CurrentKeyID], 32)
}

func TestLoadRequiresDatabasePath(t *testing.T) {
	t.Setenv("DB_PATH", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingDatabasePath)
}

func TestLoadExplicitSecrets(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/agentdeck.db")
	t.Setenv("SESSION_SECRET", "real-secret")
	t.Setenv("MASTER_KEY_B64", base64.StdEncoding.EncodeToString(make([]byte, 32)))
	t.Setenv("GATEWAY_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Session.InsecureDefault)
	assert.Equal(t, []byte("real-secret"), cfg.Session.Secret)
	assert.False(t, cfg.Crypto.InsecureDefault)
	assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
}

func TestLoadRejectsBadMasterKey(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/agentdeck.db")
	t.Setenv("MASTER_KEY_B64", "dG9vLXNob3J0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}
