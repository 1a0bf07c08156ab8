package repositories

import (
	"context"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AdminUserRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Update(ctx context.Context, admin *models.AdminUser) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.AdminUser, error)
	CountActiveByFamily(ctx context.Context, familyID uuid.UUID) (int, error)
	RecordLogin(ctx context.Context, id uuid.UUID) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type adminUserRepo struct {
	db DB
}

func NewAdminUserRepo(db DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

const adminColumns = `id, family_id, email, password_hash, is_active, last_login_at, created_at`

func (r *adminUserRepo) Create(ctx context.Context, admin *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, family_id, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, admin.ID, admin.FamilyID, admin.Email, admin.PasswordHash, admin.IsActive)
	return err
}

func (r *adminUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&admin.ID, &admin.FamilyID, &admin.Email, &admin.PasswordHash, &admin.IsActive, &admin.LastLoginAt, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// GetByEmail resolves an admin by its platform-unique email. This is the
// only admin lookup the login flow uses.
func (r *adminUserRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE email = $1`
	err := r.db.QueryRow(ctx, query, email).Scan(&admin.ID, &admin.FamilyID, &admin.Email, &admin.PasswordHash, &admin.IsActive, &admin.LastLoginAt, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *adminUserRepo) Update(ctx context.Context, admin *models.AdminUser) error {
	query := `
		UPDATE admin_users
		SET email = $1, password_hash = $2, is_active = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, admin.Email, admin.PasswordHash, admin.IsActive, admin.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminUserRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE family_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*models.AdminUser
	for rows.Next() {
		admin := &models.AdminUser{}
		if err := rows.Scan(&admin.ID, &admin.FamilyID, &admin.Email, &admin.PasswordHash, &admin.IsActive, &admin.LastLoginAt, &admin.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *adminUserRepo) CountActiveByFamily(ctx context.Context, familyID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM admin_users WHERE family_id = $1 AND is_active = TRUE`
	if err := r.db.QueryRow(ctx, query, familyID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *adminUserRepo) RecordLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *adminUserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE admin_users SET password_hash = $1 WHERE email = $2`, passwordHash, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
