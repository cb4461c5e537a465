package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"agentdeck/internal/gateway"
)

var ErrMissingDatabasePath = errors.New("DB_PATH is required")

// Development fallbacks. They keep the server bootable without any
// secrets configured; main logs a warning when either is in use.
const (
	insecureSessionSecret = "agentdeck-dev-session-secret"
	// base64 of 32 zero bytes
	insecureMasterKeyB64 = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
)

type Config struct {
	ListenAddr string
	DB         DBConfig
	Session    SessionConfig
	Crypto     CryptoConfig
	Gateway    GatewayConfig
	Log        LogConfig
}

type DBConfig struct {
	Path string
}

type SessionConfig struct {
	Secret []byte
	// InsecureDefault is set when no SESSION_SECRET was configured.
	InsecureDefault bool
}

type CryptoConfig struct {
	CurrentKeyID string
	Keys         map[string][]byte
	// InsecureDefault is set when no MASTER_KEY_B64 was configured.
	InsecureDefault bool
}

type GatewayConfig struct {
	BaseURL string
	Referer string
	Title   string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr: mustEnv("LISTEN_ADDR", ":8080"),
		DB: DBConfig{
			Path: mustEnv("DB_PATH", ""),
		},
		Gateway: GatewayConfig{
			BaseURL: mustEnv("OPENROUTER_BASE_URL", gateway.DefaultBaseURL),
			Referer: mustEnv("HTTP_REFERER", "http://localhost:3000"),
			Title:   mustEnv("APP_TITLE", "Agentdeck"),
			Timeout: mustDuration("GATEWAY_TIMEOUT", 20*time.Second),
		},
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
	}

	if cfg.DB.Path == "" {
		return nil, ErrMissingDatabasePath
	}

	secret := mustEnv("SESSION_SECRET", "")
	if secret == "" {
		secret = insecureSessionSecret
		cfg.Session.InsecureDefault = true
	}
	cfg.Session.Secret = []byte(secret)

	cc, err := loadCryptoConfig()
	if err != nil {
		return nil, err
	}
	cfg.Crypto = cc

	return cfg, nil
}

func loadCryptoConfig() (CryptoConfig, error) {
	b64 := mustEnv("MASTER_KEY_B64", "")
	insecure := false
	if b64 == "" {
		b64 = insecureMasterKeyB64
		insecure = true
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return CryptoConfig{}, fmt.Errorf("decode MASTER_KEY_B64: %w", err)
	}
	if len(raw) != 32 {
		return CryptoConfig{}, fmt.Errorf("MASTER_KEY_B64 must be 32 bytes after base64 decode")
	}

	id := mustEnv("MASTER_KEY_ID", "default")
	return CryptoConfig{
		CurrentKeyID:    id,
		Keys:            map[string][]byte{id: raw},
		InsecureDefault: insecure,
	}, nil
}

func mustEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
