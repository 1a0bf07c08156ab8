package repositories

import (
	"context"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GiftRepository joins every family-facing query through children so the
// tenant filter is baked into the SQL. There is no lookup by gift ID alone;
// wrong-tenant and missing rows are both pgx.ErrNoRows to the caller.
type GiftRepository interface {
	Create(ctx context.Context, familyID uuid.UUID, gift *models.Gift) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Gift, error)
	Update(ctx context.Context, familyID uuid.UUID, gift *models.Gift) error
	ListByChild(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error)
	MarkPurchased(ctx context.Context, familyID, id uuid.UUID, buyerName string) error
	UnmarkPurchased(ctx context.Context, familyID, id uuid.UUID) error
	SoftDelete(ctx context.Context, familyID, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (childID, familyID uuid.UUID, err error)
	ListDeleted(ctx context.Context, limit, offset int) ([]*models.DeletedGift, error)
	CountDeleted(ctx context.Context) (int, error)
}

type giftRepo struct {
	db DB
}

func NewGiftRepo(db DB) GiftRepository {
	return &giftRepo{db: db}
}

const giftColumns = `g.id, g.child_id, g.name, g.description, g.link, g.link2, g.image_url, g.price_range, g.is_purchased, g.purchased_by, g.is_deleted, g.deleted_at, g.created_at`

func scanGift(row pgx.Row) (*models.Gift, error) {
	gift := &models.Gift{}
	err := row.Scan(&gift.ID, &gift.ChildID, &gift.Name, &gift.Description, &gift.Link, &gift.Link2, &gift.ImageURL, &gift.PriceRange, &gift.IsPurchased, &gift.PurchasedBy, &gift.IsDeleted, &gift.DeletedAt, &gift.CreatedAt)
	if err != nil {
		return nil, err
	}
	return gift, nil
}

// Create inserts a gift only when its child belongs to the given family.
func (r *giftRepo) Create(ctx context.Context, familyID uuid.UUID, gift *models.Gift) error {
	query := `
		INSERT INTO gifts (id, child_id, name, description, link, link2, image_url, price_range, is_purchased, purchased_by, is_deleted, created_at)
		SELECT $1, c.id, $3, $4, $5, $6, $7, $8, FALSE, NULL, FALSE, NOW()
		FROM children c
		WHERE c.family_id = $2 AND c.id = $9
	`
	tag, err := r.db.Exec(ctx, query, gift.ID, familyID, gift.Name, gift.Description, gift.Link, gift.Link2, gift.ImageURL, gift.PriceRange, gift.ChildID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *giftRepo) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Gift, error) {
	query := `
		SELECT ` + giftColumns + `
		FROM gifts g
		JOIN children c ON g.child_id = c.id
		WHERE c.family_id = $1 AND g.id = $2 AND g.is_deleted = FALSE
	`
	return scanGift(r.db.QueryRow(ctx, query, familyID, id))
}

func (r *giftRepo) Update(ctx context.Context, familyID uuid.UUID, gift *models.Gift) error {
	query := `
		UPDATE gifts g
		SET name = $3, description = $4, link = $5, link2 = $6, image_url = $7, price_range = $8
		FROM children c
		WHERE g.child_id = c.id AND c.family_id = $1 AND g.id = $2 AND g.is_deleted = FALSE
	`
	tag, err := r.db.Exec(ctx, query, familyID, gift.ID, gift.Name, gift.Description, gift.Link, gift.Link2, gift.ImageURL, gift.PriceRange)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListByChild returns the child's active gifts, unpurchased first, ties
// broken by creation time.
func (r *giftRepo) ListByChild(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error) {
	query := `
		SELECT ` + giftColumns + `
		FROM gifts g
		JOIN children c ON g.child_id = c.id
		WHERE c.family_id = $1 AND c.id = $2 AND g.is_deleted = FALSE
		ORDER BY g.is_purchased ASC, g.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, familyID, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gifts []*models.Gift
	for rows.Next() {
		gift, err := scanGift(rows)
		if err != nil {
			return nil, err
		}
		gifts = append(gifts, gift)
	}
	return gifts, rows.Err()
}

func (r *giftRepo) MarkPurchased(ctx context.Context, familyID, id uuid.UUID, buyerName string) error {
	query := `
		UPDATE gifts g
		SET is_purchased = TRUE, purchased_by = $3
		FROM children c
		WHERE g.child_id = c.id AND c.family_id = $1 AND g.id = $2 AND g.is_deleted = FALSE
	`
	tag, err := r.db.Exec(ctx, query, familyID, id, buyerName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *giftRepo) UnmarkPurchased(ctx context.Context, familyID, id uuid.UUID) error {
	query := `
		UPDATE gifts g
		SET is_purchased = FALSE, purchased_by = NULL
		FROM children c
		WHERE g.child_id = c.id AND c.family_id = $1 AND g.id = $2 AND g.is_deleted = FALSE
	`
	tag, err := r.db.Exec(ctx, query, familyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SoftDelete hides an active gift. Already-deleted gifts don't match, so a
// repeat call reports not found.
func (r *giftRepo) SoftDelete(ctx context.Context, familyID, id uuid.UUID) error {
	query := `
		UPDATE gifts g
		SET is_deleted = TRUE, deleted_at = NOW()
		FROM children c
		WHERE g.child_id = c.id AND c.family_id = $1 AND g.id = $2 AND g.is_deleted = FALSE
	`
	tag, err := r.db.Exec(ctx, query, familyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Restore is the superadmin recovery path and the one place a gift is
// addressed without a family filter. It only matches soft-deleted rows;
// restoring an active gift reports not found. The owning child and family
// come back so the caller can invalidate the listing cache.
func (r *giftRepo) Restore(ctx context.Context, id uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	query := `
		UPDATE gifts g
		SET is_deleted = FALSE, deleted_at = NULL
		FROM children c
		WHERE g.id = $1 AND g.is_deleted = TRUE AND g.child_id = c.id
		RETURNING g.child_id, c.family_id
	`
	var childID, familyID uuid.UUID
	if err := r.db.QueryRow(ctx, query, id).Scan(&childID, &familyID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return childID, familyID, nil
}

func (r *giftRepo) ListDeleted(ctx context.Context, limit, offset int) ([]*models.DeletedGift, error) {
	query := `
		SELECT ` + giftColumns + `, c.name AS child_name, f.id AS family_id, f.name AS family_name
		FROM gifts g
		JOIN children c ON g.child_id = c.id
		JOIN families f ON c.family_id = f.id
		WHERE g.is_deleted = TRUE
		ORDER BY g.deleted_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gifts []*models.DeletedGift
	for rows.Next() {
		dg := &models.DeletedGift{}
		if err := rows.Scan(&dg.ID, &dg.ChildID, &dg.Name, &dg.Description, &dg.Link, &dg.Link2, &dg.ImageURL, &dg.PriceRange, &dg.IsPurchased, &dg.PurchasedBy, &dg.IsDeleted, &dg.DeletedAt, &dg.CreatedAt, &dg.ChildName, &dg.FamilyID, &dg.FamilyName); err != nil {
			return nil, err
		}
		gifts = append(gifts, dg)
	}
	return gifts, rows.Err()
}

func (r *giftRepo) CountDeleted(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM gifts WHERE is_deleted = TRUE`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
