package models

import "time"

// Credential is the persisted remember-me record. It binds the digest of a
// secret to a user and a validity window; the secret itself is never stored.
type Credential struct {
	Hash      string     `db:"hash" json:"hash"`
	UserID    string     `db:"user_id" json:"user_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// ExpiredAt reports whether the credential is expired at instant now.
// Expiry is inclusive: a record whose ExpiresAt equals now is expired.
// A nil ExpiresAt never expires.
func (c *Credential) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}
