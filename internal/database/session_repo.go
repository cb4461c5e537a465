package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"agentdeck/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionRepo handles session database operations
type SessionRepo struct {
	store *Store
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

// Create persists a new session row.
func (r *SessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	q := r.store.sql.Insert("sessions").
		Columns("id", "user_id", "token", "created_at", "expires_at").
		Values(session.ID, session.UserID, session.Token, session.CreatedAt, session.ExpiresAt)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build session insert: %w", err)
	}
	return withRetry(ctx, func() error {
		if _, err := r.store.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
}

// GetByToken retrieves a session by its raw token. An expired session is
// removed on observation and reported as ErrSessionExpired; the stored
// row, not the token's own expiry claim, decides validity.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	q := r.store.sql.Select("id", "user_id", "token", "created_at", "expires_at").
		From("sessions").
		Where(sq.Eq{"token": token})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build session query: %w", err)
	}

	session := &models.Session{}
	err = r.store.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&session.ID, &session.UserID, &session.Token,
		&session.CreatedAt, &session.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		_ = r.DeleteByToken(ctx, token)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// DeleteByToken removes a session by its raw token. Absence of a
// matching row is not an error.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	q := r.store.sql.Delete("sessions").Where(sq.Eq{"token": token})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build session delete: %w", err)
	}
	return withRetry(ctx, func() error {
		if _, err := r.store.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// DeleteExpired bulk-removes all sessions whose expiry has passed.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	q := r.store.sql.Delete("sessions").Where(sq.Lt{"expires_at": time.Now()})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build expired delete: %w", err)
	}
	res, err := r.store.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
