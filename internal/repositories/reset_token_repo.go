package repositories

import (
	"context"

	"giftnest/internal/models"

	"github.com/jackc/pgx/v5"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type resetTokenRepo struct {
	db DB
}

func NewResetTokenRepo(db DB) ResetTokenRepository {
	return &resetTokenRepo{db: db}
}

func (r *resetTokenRepo) Create(ctx context.Context, token *models.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, email, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
	`
	_, err := r.db.Exec(ctx, query, token.ID, token.Email, token.Token, token.ExpiresAt)
	return err
}

func (r *resetTokenRepo) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	rt := &models.PasswordResetToken{}
	query := `
		SELECT id, email, token, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`
	err := r.db.QueryRow(ctx, query, token).Scan(&rt.ID, &rt.Email, &rt.Token, &rt.ExpiresAt, &rt.Used, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *resetTokenRepo) MarkUsed(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE token = $1 AND used = FALSE`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteExpired drops tokens past expiry or already consumed. Run from the
// background scheduler.
func (r *resetTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < NOW() OR used = TRUE`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
