package models

import "time"

// Example is one exemplar exchange shown for an agent.
type Example struct {
	UserMessage   string `json:"userMessage"`
	AgentResponse string `json:"agentResponse"`
}

// Agent is a chat persona: a fixed system prompt plus display metadata.
// Built-in agents are code-defined and carry no owner; custom agents
// belong to the user that created them.
type Agent struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"` // empty for built-ins
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Description  string    `json:"description"`
	Personality  string    `json:"personality"`
	Expertise    []string  `json:"expertise"`
	SystemPrompt string    `json:"systemPrompt"`
	Avatar       string    `json:"avatar"`
	Color        string    `json:"color"`
	Restrictions []string  `json:"restrictions,omitempty"`
	Examples     []Example `json:"examples"`
	IsPublic     bool      `json:"isPublic"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AgentSummary is the public listing projection of an agent, annotated
// with ownership flags for the requesting user.
type AgentSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Expertise   []string  `json:"expertise"`
	Avatar      string    `json:"avatar"`
	Color       string    `json:"color"`
	Examples    []Example `json:"examples"`
	IsCustom    bool      `json:"isCustom"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CanDelete   bool      `json:"canDelete"`
}

// Summary builds the listing projection for the given viewer.
func (a *Agent) Summary(custom bool, createdBy string, viewerID string) AgentSummary {
	return AgentSummary{
		ID:          a.ID,
		Name:        a.Name,
		Role:        a.Role,
		Description: a.Description,
		Expertise:   a.Expertise,
		Avatar:      a.Avatar,
		Color:       a.Color,
		Examples:    a.Examples,
		IsCustom:    custom,
		CreatedBy:   createdBy,
		CanDelete:   custom && viewerID != "" && a.UserID == viewerID,
	}
}

// CreateAgentRequest represents the request body for creating a custom agent
type CreateAgentRequest struct {
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Description  string    `json:"description"`
	Personality  string    `json:"personality"`
	Expertise    []string  `json:"expertise"`
	SystemPrompt string    `json:"systemPrompt"`
	Avatar       string    `json:"avatar"`
	Color        string    `json:"color"`
	Restrictions []string  `json:"restrictions"`
	Examples     []Example `json:"examples"`
	IsPublic     bool      `json:"isPublic"`
}
