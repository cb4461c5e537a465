package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agentdeck/internal/agents"
	"agentdeck/internal/auth"
	"agentdeck/internal/database"
	"agentdeck/internal/models"
)

// listAgents handles GET /api/agents. Built-in personas come first,
// then custom agents visible to the viewer, each annotated with
// ownership flags.
func (h *Handlers) listAgents(c echo.Context) error {
	viewerID := ""
	if user := auth.CurrentUser(c); user != nil {
		viewerID = user.ID
	}

	all := make([]models.AgentSummary, 0)
	for _, builtin := range agents.All() {
		all = append(all, builtin.Summary(false, "", viewerID))
	}

	customs, err := h.Agents.ListVisible(c.Request().Context(), viewerID)
	if err != nil {
		h.Log.Error().Err(err).Msg("list agents failed")
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	for _, custom := range customs {
		all = append(all, custom.Summary(true, custom.OwnerUsername, viewerID))
	}

	return ok(c, http.StatusOK, map[string]any{
		"agents": all,
		"count":  len(all),
	})
}

// createAgent handles POST /api/agents (auth required).
func (h *Handlers) createAgent(c echo.Context) error {
	user := auth.CurrentUser(c)

	var req models.CreateAgentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Role = strings.TrimSpace(req.Role)
	req.Description = strings.TrimSpace(req.Description)
	req.SystemPrompt = strings.TrimSpace(req.SystemPrompt)
	if req.Name == "" || req.Role == "" || req.Description == "" || req.SystemPrompt == "" {
		return fail(c, http.StatusBadRequest, "Missing required fields: name, role, description, systemPrompt")
	}
	if req.Expertise == nil || req.Examples == nil {
		return fail(c, http.StatusBadRequest, "Expertise and examples must be arrays")
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = "🤖"
	}
	color := req.Color
	if color == "" {
		color = "bg-gray-500"
	}

	agent := &models.Agent{
		UserID:       user.ID,
		Name:         req.Name,
		Role:         req.Role,
		Description:  req.Description,
		Personality:  strings.TrimSpace(req.Personality),
		Expertise:    req.Expertise,
		SystemPrompt: req.SystemPrompt,
		Avatar:       avatar,
		Color:        color,
		Restrictions: req.Restrictions,
		Examples:     req.Examples,
		IsPublic:     req.IsPublic,
	}
	if err := h.Agents.Create(c.Request().Context(), agent); err != nil {
		h.Log.Error().Err(err).Msg("create agent failed")
		return fail(c, http.StatusInternalServerError, "Failed to create agent")
	}

	return ok(c, http.StatusOK, map[string]any{
		"agent": agent.Summary(true, user.Username, user.ID),
	})
}

// deleteAgent handles DELETE /api/agents?id= (auth required, owner only).
func (h *Handlers) deleteAgent(c echo.Context) error {
	user := auth.CurrentUser(c)

	agentID := c.QueryParam("id")
	if agentID == "" {
		return fail(c, http.StatusBadRequest, "Agent ID required")
	}

	ctx := c.Request().Context()
	agent, err := h.Agents.GetAnyByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, database.ErrAgentNotFound) {
			return fail(c, http.StatusNotFound, "Agent not found")
		}
		h.Log.Error().Err(err).Msg("delete agent lookup failed")
		return fail(c, http.StatusInternalServerError, "Failed to delete agent")
	}
	if agent.UserID != user.ID {
		return fail(c, http.StatusForbidden, "Not authorized to delete this agent")
	}

	if err := h.Agents.Delete(ctx, agentID); err != nil {
		h.Log.Error().Err(err).Msg("delete agent failed")
		return fail(c, http.StatusInternalServerError, "Failed to delete agent")
	}

	return ok(c, http.StatusOK, map[string]any{"message": "Agent deleted successfully"})
}

// getAgent handles GET /api/agents/:id — public metadata for one agent.
func (h *Handlers) getAgent(c echo.Context) error {
	agent, err := h.findAgent(c, c.Param("id"))
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, map[string]any{
		"agent": map[string]any{
			"id":          agent.ID,
			"name":        agent.Name,
			"role":        agent.Role,
			"description": agent.Description,
			"expertise":   agent.Expertise,
			"avatar":      agent.Avatar,
			"color":       agent.Color,
			"examples":    agent.Examples,
		},
	})
}

// findAgent looks an id up in the built-in catalog first, then among
// active custom agents. On miss it writes the 404 itself and returns
// the response error.
func (h *Handlers) findAgent(c echo.Context, id string) (*models.Agent, error) {
	if builtin, found := agents.ByID(id); found {
		return builtin, nil
	}

	agent, err := h.Agents.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrAgentNotFound) {
			return nil, fail(c, http.StatusNotFound, "Agent not found")
		}
		h.Log.Error().Err(err).Msg("agent lookup failed")
		return nil, fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return agent, nil
}
