package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agentdeck/internal/credentials"
	"agentdeck/internal/gateway"
	"agentdeck/internal/metrics"
)

type chatRequest struct {
	Message      string            `json:"message"`
	Conversation []gateway.Message `json:"conversation"`
	Model        string            `json:"model"`
}

// chat handles POST /api/agents/:id — one completion turn with the
// given agent persona.
func (h *Handlers) chat(c echo.Context) error {
	metrics.Global().ChatRequests.Inc()

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	// Query parameter wins over the body, then the default.
	model := c.QueryParam("model")
	if model == "" {
		model = req.Model
	}

	ctx := c.Request().Context()
	cred, err := h.Resolver.Resolve(ctx, c.Request())
	if err != nil {
		if errors.Is(err, credentials.ErrNoAPIKey) {
			return fail(c, http.StatusUnauthorized, err.Error())
		}
		h.Log.Error().Err(err).Msg("credential resolution failed")
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	if strings.TrimSpace(req.Message) == "" {
		return fail(c, http.StatusBadRequest, "Message is required")
	}

	agent, err := h.findAgent(c, c.Param("id"))
	if err != nil {
		return err
	}

	completion, err := h.Gateway.Complete(ctx, gateway.Request{
		SystemPrompt: agent.SystemPrompt,
		History:      req.Conversation,
		UserMessage:  req.Message,
		Model:        model,
		APIKey:       cred.Key,
	})
	if err != nil {
		metrics.Global().ChatFailures.Inc()
		var upstream *gateway.UpstreamError
		if errors.As(err, &upstream) {
			h.Log.Warn().Int("status", upstream.Status).Str("agent", agent.ID).Msg("upstream completion failed")
			return fail(c, http.StatusInternalServerError, upstream.Error())
		}
		h.Log.Error().Err(err).Str("agent", agent.ID).Msg("completion failed")
		return fail(c, http.StatusInternalServerError, "Sorry, I encountered an error. Please try again.")
	}

	return ok(c, http.StatusOK, map[string]any{
		"message": completion.Message,
		"agent": map[string]any{
			"id":     agent.ID,
			"name":   agent.Name,
			"role":   agent.Role,
			"avatar": agent.Avatar,
		},
		"usage": completion.Usage,
	})
}
