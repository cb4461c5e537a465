package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agentdeck/internal/api"
	"agentdeck/internal/auth"
	"agentdeck/internal/config"
	"agentdeck/internal/credentials"
	"agentdeck/internal/database"
	"agentdeck/internal/gateway"
	"agentdeck/internal/secrets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := log.With().Str("component", "agentdeck").Logger()

	if cfg.Session.InsecureDefault {
		logger.Warn().Msg("SESSION_SECRET not set, using insecure development default")
	}
	if cfg.Crypto.InsecureDefault {
		logger.Warn().Msg("MASTER_KEY_B64 not set, stored keys are encrypted with an insecure development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, database.Config{Path: cfg.DB.Path})
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("open database")
	}
	defer store.Close()

	keyring, err := secrets.NewKeyring(cfg.Crypto.CurrentKeyID, cfg.Crypto.Keys)
	if err != nil {
		logger.Fatal().Err(err).Msg("build keyring")
	}

	users := database.NewUserRepo(store)
	sessions := database.NewSessionRepo(store)
	keys := database.NewAPIKeyRepo(store, keyring)
	agentRepo := database.NewAgentRepo(store)

	if err := users.EnsureDefaultUser(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed default user")
	}

	tokens := auth.NewTokenManager(cfg.Session.Secret, auth.SessionTTL)
	authSvc := auth.NewService(users, sessions, tokens, logger)
	authSvc.CleanupExpiredSessions(ctx)

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.Gateway.BaseURL,
		Referer: cfg.Gateway.Referer,
		Title:   cfg.Gateway.Title,
		Timeout: cfg.Gateway.Timeout,
	})

	handlers := &api.Handlers{
		Auth:     authSvc,
		Users:    users,
		Agents:   agentRepo,
		Keys:     keys,
		Resolver: credentials.NewResolver(keys, authSvc),
		Gateway:  gw,
		Log:      logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	handlers.RegisterRoutes(e.Group("/api"))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
