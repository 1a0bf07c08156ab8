package repositories

import (
	"context"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ChildRepository scopes every operation to a family. A child lookup without
// the family filter is not offered.
type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Child, error)
	Update(ctx context.Context, child *models.Child) error
	Delete(ctx context.Context, familyID, id uuid.UUID) error
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Child, error)
}

type childRepo struct {
	db DB
}

func NewChildRepo(db DB) ChildRepository {
	return &childRepo{db: db}
}

func (r *childRepo) Create(ctx context.Context, child *models.Child) error {
	query := `
		INSERT INTO children (id, family_id, name, age, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, child.ID, child.FamilyID, child.Name, child.Age)
	return err
}

func (r *childRepo) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Child, error) {
	child := &models.Child{}
	query := `
		SELECT id, family_id, name, age, created_at
		FROM children
		WHERE family_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, familyID, id).Scan(&child.ID, &child.FamilyID, &child.Name, &child.Age, &child.CreatedAt)
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (r *childRepo) Update(ctx context.Context, child *models.Child) error {
	query := `
		UPDATE children
		SET name = $1, age = $2
		WHERE family_id = $3 AND id = $4
	`
	tag, err := r.db.Exec(ctx, query, child.Name, child.Age, child.FamilyID, child.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete hard-deletes a child and all of its gifts. Soft-deleted gifts go
// with it too: once the child is gone there is nothing to restore onto.
func (r *childRepo) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	giftQuery := `
		DELETE FROM gifts
		USING children c
		WHERE gifts.child_id = c.id AND c.family_id = $1 AND c.id = $2
	`
	if _, err := r.db.Exec(ctx, giftQuery, familyID, id); err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM children WHERE family_id = $1 AND id = $2`, familyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *childRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Child, error) {
	query := `
		SELECT id, family_id, name, age, created_at
		FROM children
		WHERE family_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*models.Child
	for rows.Next() {
		child := &models.Child{}
		if err := rows.Scan(&child.ID, &child.FamilyID, &child.Name, &child.Age, &child.CreatedAt); err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, rows.Err()
}
