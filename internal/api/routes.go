package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"agentdeck/internal/auth"
	"agentdeck/internal/credentials"
	"agentdeck/internal/database"
	"agentdeck/internal/gateway"
)

// Gateway is the completion backend the chat handlers talk to.
type Gateway interface {
	Complete(ctx context.Context, req gateway.Request) (*gateway.Completion, error)
	CheckKey(ctx context.Context, apiKey string) error
}

// Handlers bundles the API's dependencies. Everything is injected at
// startup; there are no package globals.
type Handlers struct {
	Auth     *auth.Service
	Users    *database.UserRepo
	Agents   *database.AgentRepo
	Keys     *database.APIKeyRepo
	Resolver *credentials.Resolver
	Gateway  Gateway
	Log      zerolog.Logger
}

// RegisterRoutes sets up all API routes
func (h *Handlers) RegisterRoutes(api *echo.Group) {
	api.GET("/health", h.health)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", h.signup)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.logout)
	authGroup.GET("/validate", h.validate)

	// Agent and key routes are open to browser clients on any origin.
	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization", "x-api-key", auth.TokenHeader, "x-openrouter-api-key"},
	})

	agents := api.Group("/agents", cors)
	agents.GET("", h.listAgents, auth.OptionalAuth(h.Auth))
	agents.POST("", h.createAgent, auth.RequireAuth(h.Auth))
	agents.DELETE("", h.deleteAgent, auth.RequireAuth(h.Auth))
	agents.GET("/:id", h.getAgent)
	agents.POST("/:id", h.chat)

	keys := api.Group("", cors)
	keys.GET("/keys", h.listKeys)
	keys.POST("/keys", h.saveKey)
	keys.DELETE("/keys", h.deleteKey)
	keys.POST("/test-key", h.testKey)
}

func (h *Handlers) health(c echo.Context) error {
	return ok(c, http.StatusOK, map[string]any{"status": "ok"})
}
