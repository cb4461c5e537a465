package models

import "time"

// DefaultProvider is assumed when a request does not name one.
const DefaultProvider = "openrouter"

// APIKey is a stored provider credential. At most one active key exists
// per (user, provider) pair; deactivation is a soft delete so historical
// keys stay queryable but inert.
type APIKey struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Provider  string    `json:"provider"`
	Name      string    `json:"name"`
	KeyValue  string    `json:"-"` // Never expose in JSON
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIKeyInfo is the metadata projection returned by the key-listing
// endpoint; the secret value never leaves the store in list form.
type APIKeyInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveKeyRequest represents the request body for storing a provider key
type SaveKeyRequest struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	KeyValue string `json:"keyValue"`
}

// DeleteKeyRequest represents the request body for deactivating a key
type DeleteKeyRequest struct {
	KeyID string `json:"keyId"`
}
