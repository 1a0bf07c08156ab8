package repositories

import (
	"context"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FamilyRepository interface {
	Create(ctx context.Context, family *models.Family) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error)
	Update(ctx context.Context, family *models.Family) error
	List(ctx context.Context, limit, offset int) ([]*models.Family, error)
	ListActive(ctx context.Context) ([]*models.Family, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type familyRepo struct {
	db DB
}

func NewFamilyRepo(db DB) FamilyRepository {
	return &familyRepo{db: db}
}

func (r *familyRepo) Create(ctx context.Context, family *models.Family) error {
	query := `
		INSERT INTO families (id, name, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, family.ID, family.Name, family.PasswordHash, family.IsActive)
	return err
}

func (r *familyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	family := &models.Family{}
	query := `
		SELECT id, name, password_hash, is_active, created_at, updated_at
		FROM families
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&family.ID, &family.Name, &family.PasswordHash, &family.IsActive, &family.CreatedAt, &family.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return family, nil
}

func (r *familyRepo) Update(ctx context.Context, family *models.Family) error {
	query := `
		UPDATE families
		SET name = $1, password_hash = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := r.db.Exec(ctx, query, family.Name, family.PasswordHash, family.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *familyRepo) List(ctx context.Context, limit, offset int) ([]*models.Family, error) {
	query := `
		SELECT id, name, password_hash, is_active, created_at, updated_at
		FROM families
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		family := &models.Family{}
		if err := rows.Scan(&family.ID, &family.Name, &family.PasswordHash, &family.IsActive, &family.CreatedAt, &family.UpdatedAt); err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return families, rows.Err()
}

// ListActive returns every active family. Family login verifies the shared
// password against each hash in turn, so the scan needs all of them.
func (r *familyRepo) ListActive(ctx context.Context) ([]*models.Family, error) {
	query := `
		SELECT id, name, password_hash, is_active, created_at, updated_at
		FROM families
		WHERE is_active = TRUE
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		family := &models.Family{}
		if err := rows.Scan(&family.ID, &family.Name, &family.PasswordHash, &family.IsActive, &family.CreatedAt, &family.UpdatedAt); err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return families, rows.Err()
}

func (r *familyRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE families SET is_active = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
