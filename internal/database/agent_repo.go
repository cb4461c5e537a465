package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"agentdeck/internal/models"
)

var ErrAgentNotFound = errors.New("agent not found")

const agentColumns = "a.id, a.user_id, a.name, a.role, a.description, a.personality, a.expertise, a.system_prompt, a.avatar, a.color, a.restrictions, a.examples, a.is_public, a.is_active, a.created_at"

// AgentRepo handles custom-agent database operations. List-valued fields
// are typed slices on the model; they are serialized to JSON columns
// here and the round-trip never leaves this package.
type AgentRepo struct {
	store *Store
}

// NewAgentRepo creates a new agent repository
func NewAgentRepo(store *Store) *AgentRepo {
	return &AgentRepo{store: store}
}

// CustomAgent pairs an agent with its owner's username for listing.
type CustomAgent struct {
	models.Agent
	OwnerUsername string
}

// Create persists a new custom agent.
func (r *AgentRepo) Create(ctx context.Context, agent *models.Agent) error {
	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}
	expertise, err := json.Marshal(sliceOrEmpty(agent.Expertise))
	if err != nil {
		return fmt.Errorf("marshal expertise: %w", err)
	}
	examples, err := json.Marshal(examplesOrEmpty(agent.Examples))
	if err != nil {
		return fmt.Errorf("marshal examples: %w", err)
	}
	var restrictions any
	if len(agent.Restrictions) > 0 {
		b, err := json.Marshal(agent.Restrictions)
		if err != nil {
			return fmt.Errorf("marshal restrictions: %w", err)
		}
		restrictions = string(b)
	}

	q := r.store.sql.Insert("agents").
		Columns("id", "user_id", "name", "role", "description", "personality",
			"expertise", "system_prompt", "avatar", "color", "restrictions",
			"examples", "is_public", "is_active").
		Values(agent.ID, agent.UserID, agent.Name, agent.Role, agent.Description,
			agent.Personality, string(expertise), agent.SystemPrompt, agent.Avatar,
			agent.Color, restrictions, string(examples), agent.IsPublic, true)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build agent insert: %w", err)
	}
	return withRetry(ctx, func() error {
		if _, err := r.store.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert agent: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an active custom agent.
func (r *AgentRepo) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	q := r.store.sql.Select(agentColumns).
		From("agents a").
		Where(sq.Eq{"a.id": id, "a.is_active": true})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build agent query: %w", err)
	}

	agent, err := scanAgent(r.store.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// GetAnyByID retrieves an agent regardless of its active flag, for
// owner checks ahead of deletion.
func (r *AgentRepo) GetAnyByID(ctx context.Context, id string) (*models.Agent, error) {
	q := r.store.sql.Select(agentColumns).
		From("agents a").
		Where(sq.Eq{"a.id": id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build agent query: %w", err)
	}
	return scanAgent(r.store.db.QueryRowContext(ctx, sqlStr, args...))
}

// ListVisible returns active custom agents visible to the given viewer:
// every public agent plus the viewer's own. An empty viewerID lists
// public agents only.
func (r *AgentRepo) ListVisible(ctx context.Context, viewerID string) ([]CustomAgent, error) {
	visibility := sq.Sqlizer(sq.Eq{"a.is_public": true})
	if viewerID != "" {
		visibility = sq.Or{sq.Eq{"a.is_public": true}, sq.Eq{"a.user_id": viewerID}}
	}
	q := r.store.sql.Select(agentColumns + ", u.username").
		From("agents a").
		Join("users u ON a.user_id = u.id").
		Where(sq.And{sq.Eq{"a.is_active": true}, visibility}).
		OrderBy("a.created_at ASC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build visible agents query: %w", err)
	}

	rows, err := r.store.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	out := make([]CustomAgent, 0)
	for rows.Next() {
		var ca CustomAgent
		agent, err := scanAgentFrom(rows.Scan, &ca.OwnerUsername)
		if err != nil {
			return nil, err
		}
		ca.Agent = *agent
		out = append(out, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent rows: %w", err)
	}
	return out, nil
}

// Delete permanently removes an agent. Ownership is checked by the caller.
func (r *AgentRepo) Delete(ctx context.Context, id string) error {
	q := r.store.sql.Delete("agents").Where(sq.Eq{"id": id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build agent delete: %w", err)
	}
	return withRetry(ctx, func() error {
		res, err := r.store.db.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("delete agent: %w", err)
		}
		n, err := res.RowsAffected()
		if err == nil && n == 0 {
			return ErrAgentNotFound
		}
		return nil
	})
}

type scanFunc func(dest ...any) error

func scanAgent(row *sql.Row) (*models.Agent, error) {
	return scanAgentFrom(row.Scan)
}

func scanAgentFrom(scan scanFunc, extra ...any) (*models.Agent, error) {
	agent := &models.Agent{}
	var expertise, examples string
	var restrictions sql.NullString
	dest := []any{
		&agent.ID, &agent.UserID, &agent.Name, &agent.Role, &agent.Description,
		&agent.Personality, &expertise, &agent.SystemPrompt, &agent.Avatar,
		&agent.Color, &restrictions, &examples, &agent.IsPublic, &agent.IsActive,
		&agent.CreatedAt,
	}
	dest = append(dest, extra...)

	err := scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan agent: %w", err)
	}

	if err := json.Unmarshal([]byte(expertise), &agent.Expertise); err != nil {
		return nil, fmt.Errorf("unmarshal expertise: %w", err)
	}
	if err := json.Unmarshal([]byte(examples), &agent.Examples); err != nil {
		return nil, fmt.Errorf("unmarshal examples: %w", err)
	}
	if restrictions.Valid {
		if err := json.Unmarshal([]byte(restrictions.String), &agent.Restrictions); err != nil {
			return nil, fmt.Errorf("unmarshal restrictions: %w", err)
		}
	}
	return agent, nil
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func examplesOrEmpty(s []models.Example) []models.Example {
	if s == nil {
		return []models.Example{}
	}
	return s
}
