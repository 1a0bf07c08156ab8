package models

import (
	"time"

	"github.com/google/uuid"
)

// Child belongs to exactly one family. Deleting a child hard-deletes its
// gifts with it.
type Child struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FamilyID  uuid.UUID `json:"family_id" db:"family_id"`
	Name      string    `json:"name" db:"name"`
	Age       *int      `json:"age" db:"age"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
