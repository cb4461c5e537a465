package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdeck/internal/models"
)

func newAgent(userID, name string, public bool) *models.Agent {
	return &models.Agent{
		UserID:       userID,
		Name:         name,
		Role:         "Helper",
		Description:  "test agent",
		Personality:  "direct",
		Expertise:    []string{"testing"},
		SystemPrompt: "You are a helper.",
		Avatar:       "🤖",
		Color:        "#888888",
		Examples: []models.Example{
			{UserMessage: "hi", AgentResponse: "hello"},
		},
		IsPublic: public,
	}
}

func TestAgentRepoCreateAndGet(t *testing.T) {
	store := setupStore(t)
	repo := NewAgentRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "alice")

	agent := newAgent(user.ID, "Test Helper", true)
	require.NoError(t, repo.Create(ctx, agent))
	require.NotEmpty(t, agent.ID)

	got, err := repo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Helper", got.Name)
	assert.Equal(t, []string{"testing"}, got.Expertise)
	require.Len(t, got.Examples, 1)
	assert.Equal(t, "hello", got.Examples[0].AgentResponse)
	assert.Nil(t, got.Restrictions)
	assert.True(t, got.IsActive)
}

func TestAgentRepoRestrictionsRoundTrip(t *testing.T) {
	store := setupStore(t)
	repo := NewAgentRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "bob")

	agent := newAgent(user.ID, "Strict", false)
	agent.Restrictions = []string{"no medical advice"}
	require.NoError(t, repo.Create(ctx, agent))

	got, err := repo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"no medical advice"}, got.Restrictions)
}

func TestAgentRepoListVisible(t *testing.T) {
	store := setupStore(t)
	repo := NewAgentRepo(store)
	ctx := context.Background()

	owner := createUser(t, store, "owner")
	other := createUser(t, store, "other")

	public := newAgent(owner.ID, "Public", true)
	private := newAgent(owner.ID, "Private", false)
	require.NoError(t, repo.Create(ctx, public))
	require.NoError(t, repo.Create(ctx, private))

	// The owner sees both.
	agents, err := repo.ListVisible(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, agents, 2)

	// Another user sees only the public one, with the owner's username.
	agents, err = repo.ListVisible(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Public", agents[0].Name)
	assert.Equal(t, "owner", agents[0].OwnerUsername)

	// Anonymous viewers get public agents only.
	agents, err = repo.ListVisible(ctx, "")
	require.NoError(t, err)
	assert.Len(t, agents, 1)
}

func TestAgentRepoDelete(t *testing.T) {
	store := setupStore(t)
	repo := NewAgentRepo(store)
	ctx := context.Background()

	user := createUser(t, store, "alice")

	agent := newAgent(user.ID, "Doomed", false)
	require.NoError(t, repo.Create(ctx, agent))

	require.NoError(t, repo.Delete(ctx, agent.ID))

	_, err := repo.GetByID(ctx, agent.ID)
	assert.ErrorIs(t, err, ErrAgentNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, agent.ID), ErrAgentNotFound)
}
