package repositories

import (
	"context"

	"giftnest/internal/models"
)

type SuperAdminRepository interface {
	Create(ctx context.Context, superadmin *models.SuperAdmin) error
	GetByEmail(ctx context.Context, email string) (*models.SuperAdmin, error)
}

type superAdminRepo struct {
	db DB
}

func NewSuperAdminRepo(db DB) SuperAdminRepository {
	return &superAdminRepo{db: db}
}

func (r *superAdminRepo) Create(ctx context.Context, superadmin *models.SuperAdmin) error {
	query := `
		INSERT INTO superadmins (id, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, superadmin.ID, superadmin.Email, superadmin.PasswordHash, superadmin.IsActive)
	return err
}

func (r *superAdminRepo) GetByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	superadmin := &models.SuperAdmin{}
	query := `
		SELECT id, email, password_hash, is_active, created_at
		FROM superadmins
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&superadmin.ID, &superadmin.Email, &superadmin.PasswordHash, &superadmin.IsActive, &superadmin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return superadmin, nil
}
