package models

import (
	"time"

	"github.com/google/uuid"
)

// SuperAdmin is a platform-wide identity, independent of any family.
type SuperAdmin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
