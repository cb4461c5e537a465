package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"agentdeck/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

const userColumns = "id, username, email, password_hash, name, is_active, created_at"

// UserRepo handles user database operations
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a new user repository
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persists a new user. A missing ID is filled in.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	q := r.store.sql.Insert("users").
		Columns("id", "username", "email", "password_hash", "name", "is_active").
		Values(user.ID, user.Username, user.Email, user.PasswordHash, nullable(user.Name), user.IsActive)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build user insert: %w", err)
	}
	return withRetry(ctx, func() error {
		_, err := r.store.db.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

// GetByUsernameOrEmail retrieves an active user whose username or email
// matches the given identifier.
func (r *UserRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	return r.getWhere(ctx, sq.And{
		sq.Or{sq.Eq{"username": identifier}, sq.Eq{"email": identifier}},
		sq.Eq{"is_active": true},
	})
}

func (r *UserRepo) getWhere(ctx context.Context, where sq.Sqlizer) (*models.User, error) {
	q := r.store.sql.Select(userColumns).From("users").Where(where)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	user := &models.User{}
	var name sql.NullString
	err = r.store.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&name, &user.IsActive, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if name.Valid {
		user.Name = name.String
	}
	return user, nil
}

// ExistsByUsername checks if a user with the given username exists
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, sq.Eq{"username": username})
}

// ExistsByEmail checks if a user with the given email exists
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, sq.Eq{"email": email})
}

func (r *UserRepo) exists(ctx context.Context, where sq.Sqlizer) (bool, error) {
	q := r.store.sql.Select("COUNT(*)").From("users").Where(where)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	var count int
	if err := r.store.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// EnsureDefaultUser creates the sentinel account used by the
// unauthenticated key-management endpoints if it does not exist yet.
func (r *UserRepo) EnsureDefaultUser(ctx context.Context) error {
	q := r.store.sql.Insert("users").
		Columns("id", "username", "email", "password_hash", "is_active").
		Values(models.DefaultUserID, "default", "default@agentdeck.local", "not-used", true).
		Suffix("ON CONFLICT(id) DO NOTHING")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build default user insert: %w", err)
	}
	return withRetry(ctx, func() error {
		if _, err := r.store.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("ensure default user: %w", err)
		}
		return nil
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
