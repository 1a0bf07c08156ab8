package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-boxed token. It carries the email
// it was issued for instead of a foreign key; the admin is resolved by email
// at consumption time.
type PasswordResetToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Token     string    `json:"-" db:"token"` // Never return in JSON
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the token is past its expiry timestamp.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
