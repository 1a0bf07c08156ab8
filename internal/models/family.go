package models

import (
	"time"

	"github.com/google/uuid"
)

// Family is the tenant root: a household sharing one wishlist space.
// Deactivation is a flag flip, families are never physically deleted.
type Family struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
