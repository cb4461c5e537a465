package models

import "time"

// Session represents one authenticated login. The token doubles as the
// primary lookup key; a session is valid iff the row exists and
// ExpiresAt is in the future.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
