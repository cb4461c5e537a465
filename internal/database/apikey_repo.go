package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"agentdeck/internal/models"
	"agentdeck/internal/secrets"
)

var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKeyRepo handles provider-key database operations. Key values are
// sealed with the keyring before they touch the database and opened
// again on read; only ciphertext is ever stored.
type APIKeyRepo struct {
	store   *Store
	keyring *secrets.Keyring
}

// NewAPIKeyRepo creates a new API key repository
func NewAPIKeyRepo(store *Store, keyring *secrets.Keyring) *APIKeyRepo {
	return &APIKeyRepo{store: store, keyring: keyring}
}

// Upsert stores a provider key for a user. A second upsert for the same
// (user, provider) pair replaces the previous value and reactivates the
// row, so at most one active key per pair ever exists.
func (r *APIKeyRepo) Upsert(ctx context.Context, key *models.APIKey) (string, error) {
	if key.ID == "" {
		key.ID = uuid.NewString()
	}
	sealed, err := r.keyring.Seal(key.KeyValue)
	if err != nil {
		return "", fmt.Errorf("seal key value: %w", err)
	}

	q := r.store.sql.Insert("api_keys").
		Columns("id", "user_id", "provider", "name", "enc_key_value", "is_active").
		Values(key.ID, key.UserID, key.Provider, key.Name, sealed, true).
		Suffix("ON CONFLICT(user_id, provider) DO UPDATE SET name=excluded.name, enc_key_value=excluded.enc_key_value, is_active=1")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build key upsert: %w", err)
	}
	err = withRetry(ctx, func() error {
		if _, err := r.store.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("upsert key: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// The conflict path keeps the original row id.
	return r.idFor(ctx, key.UserID, key.Provider)
}

func (r *APIKeyRepo) idFor(ctx context.Context, userID, provider string) (string, error) {
	q := r.store.sql.Select("id").From("api_keys").
		Where(sq.Eq{"user_id": userID, "provider": provider})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build key id query: %w", err)
	}
	var id string
	if err := r.store.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAPIKeyNotFound
		}
		return "", fmt.Errorf("get key id: %w", err)
	}
	return id, nil
}

// GetActive returns the active key for (user, provider) with its value
// decrypted, or ErrAPIKeyNotFound.
func (r *APIKeyRepo) GetActive(ctx context.Context, userID, provider string) (*models.APIKey, error) {
	q := r.store.sql.Select("id", "user_id", "provider", "name", "enc_key_value", "is_active", "created_at").
		From("api_keys").
		Where(sq.Eq{"user_id": userID, "provider": provider, "is_active": true})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active key query: %w", err)
	}

	key := &models.APIKey{}
	var sealed string
	err = r.store.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&key.ID, &key.UserID, &key.Provider, &key.Name,
		&sealed, &key.IsActive, &key.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAPIKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active key: %w", err)
	}

	key.KeyValue, err = r.keyring.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("open key value: %w", err)
	}
	return key, nil
}

// ListActive returns metadata for a user's active keys, never the values.
func (r *APIKeyRepo) ListActive(ctx context.Context, userID string) ([]models.APIKeyInfo, error) {
	q := r.store.sql.Select("id", "name", "provider", "is_active", "created_at").
		From("api_keys").
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at ASC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build key list query: %w", err)
	}

	rows, err := r.store.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	out := make([]models.APIKeyInfo, 0)
	for rows.Next() {
		var info models.APIKeyInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Provider, &info.IsActive, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan key row: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate key rows: %w", err)
	}
	return out, nil
}

// Deactivate soft-deletes a key by flipping is_active off. The row is
// never physically removed.
func (r *APIKeyRepo) Deactivate(ctx context.Context, keyID string) error {
	q := r.store.sql.Update("api_keys").
		Set("is_active", false).
		Where(sq.Eq{"id": keyID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build key deactivate: %w", err)
	}
	return withRetry(ctx, func() error {
		res, err := r.store.db.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("deactivate key: %w", err)
		}
		n, err := res.RowsAffected()
		if err == nil && n == 0 {
			return ErrAPIKeyNotFound
		}
		return nil
	})
}
