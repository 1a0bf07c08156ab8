package models

import (
	"time"

	"github.com/google/uuid"
)

// Gift belongs to exactly one child; its effective tenant is the child's
// family. Soft-deleted gifts stay in the table so the superadmin restore
// surface can bring them back.
type Gift struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ChildID     uuid.UUID  `json:"child_id" db:"child_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	Link        *string    `json:"link" db:"link"`
	Link2       *string    `json:"link2" db:"link2"`
	ImageURL    *string    `json:"image_url" db:"image_url"`
	PriceRange  *string    `json:"price_range" db:"price_range"`
	IsPurchased bool       `json:"is_purchased" db:"is_purchased"`
	PurchasedBy *string    `json:"purchased_by" db:"purchased_by"`
	IsDeleted   bool       `json:"is_deleted" db:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at" db:"deleted_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// DeletedGift carries the owning child and family alongside a soft-deleted
// gift for the superadmin recovery listing.
type DeletedGift struct {
	Gift
	ChildName  string    `json:"child_name" db:"child_name"`
	FamilyID   uuid.UUID `json:"family_id" db:"family_id"`
	FamilyName string    `json:"family_name" db:"family_name"`
}
