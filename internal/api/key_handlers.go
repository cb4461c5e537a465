package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agentdeck/internal/database"
	"agentdeck/internal/gateway"
	"agentdeck/internal/models"
)

// The key-management endpoints operate on the shared demo account
// rather than a session user, mirroring the settings screen they back.

// listKeys handles GET /api/keys — active key metadata, never values.
func (h *Handlers) listKeys(c echo.Context) error {
	keys, err := h.Keys.ListActive(c.Request().Context(), models.DefaultUserID)
	if err != nil {
		h.Log.Error().Err(err).Msg("list keys failed")
		return fail(c, http.StatusInternalServerError, "Failed to fetch API keys")
	}
	return ok(c, http.StatusOK, map[string]any{"keys": keys})
}

// saveKey handles POST /api/keys — upsert keyed on (user, provider).
func (h *Handlers) saveKey(c echo.Context) error {
	var req models.SaveKeyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Provider == "" || req.KeyValue == "" {
		return fail(c, http.StatusBadRequest, "Name, provider, and keyValue are required")
	}

	ctx := c.Request().Context()
	if err := h.Users.EnsureDefaultUser(ctx); err != nil {
		h.Log.Error().Err(err).Msg("ensure default user failed")
		return fail(c, http.StatusInternalServerError, "Failed to save API key")
	}

	keyID, err := h.Keys.Upsert(ctx, &models.APIKey{
		UserID:   models.DefaultUserID,
		Provider: req.Provider,
		Name:     req.Name,
		KeyValue: req.KeyValue,
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("save key failed")
		return fail(c, http.StatusInternalServerError, "Failed to save API key")
	}

	return ok(c, http.StatusOK, map[string]any{
		"message": "API key saved successfully",
		"keyId":   keyID,
	})
}

// deleteKey handles DELETE /api/keys — soft-delete by key id.
func (h *Handlers) deleteKey(c echo.Context) error {
	var req models.DeleteKeyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.KeyID == "" {
		return fail(c, http.StatusBadRequest, "Key ID is required")
	}

	if err := h.Keys.Deactivate(c.Request().Context(), req.KeyID); err != nil {
		if errors.Is(err, database.ErrAPIKeyNotFound) {
			return fail(c, http.StatusNotFound, "API key not found")
		}
		h.Log.Error().Err(err).Msg("delete key failed")
		return fail(c, http.StatusInternalServerError, "Failed to delete API key")
	}

	return ok(c, http.StatusOK, map[string]any{"message": "API key deleted successfully"})
}

// testKey handles POST /api/test-key — probes the provider with the
// key from the x-openrouter-api-key header.
func (h *Handlers) testKey(c echo.Context) error {
	apiKey := strings.TrimSpace(c.Request().Header.Get("x-openrouter-api-key"))
	if apiKey == "" {
		return fail(c, http.StatusBadRequest, "API key is required")
	}

	if err := h.Gateway.CheckKey(c.Request().Context(), apiKey); err != nil {
		var upstream *gateway.UpstreamError
		if errors.As(err, &upstream) {
			return fail(c, http.StatusUnauthorized, "Invalid API key")
		}
		h.Log.Error().Err(err).Msg("key check failed")
		return fail(c, http.StatusInternalServerError, "Validation failed")
	}

	return ok(c, http.StatusOK, nil)
}
