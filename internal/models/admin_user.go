package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an identity scoped to exactly one family. Email is unique
// across the whole platform so login resolves it without a tenant hint.
type AdminUser struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FamilyID     uuid.UUID  `json:"family_id" db:"family_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
