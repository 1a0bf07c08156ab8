package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"giftnest/internal/caching"
	"giftnest/internal/models"
	"giftnest/internal/repositories"

	"github.com/google/uuid"
)

const (
	resetTokenTTL        = time.Hour
	resetRequestLimit    = 3
	resetRequestWindow   = time.Hour
	resetTokenByteLength = 32
)

// PasswordResetService handles the admin self-service reset flow. Request
// never reveals whether an email exists; Confirm rejects used and expired
// tokens with the same error.
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Confirm(ctx context.Context, token, newPassword string) error
}

type passwordResetService struct {
	tokenRepo repositories.ResetTokenRepository
	adminRepo repositories.AdminUserRepository
	cacheSvc  caching.CacheService
	mailer    MailerService
}

func NewPasswordResetService(tokenRepo repositories.ResetTokenRepository, adminRepo repositories.AdminUserRepository, cacheSvc caching.CacheService, mailer MailerService) PasswordResetService {
	return &passwordResetService{
		tokenRepo: tokenRepo,
		adminRepo: adminRepo,
		cacheSvc:  cacheSvc,
		mailer:    mailer,
	}
}

// Request issues a reset token and mails it. Unknown or inactive emails
// return nil without side effects so the endpoint cannot be used to probe
// which addresses are registered.
func (s *passwordResetService) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	limited, err := s.cacheSvc.IsRateLimited(ctx, "pwreset:"+email, resetRequestLimit, resetRequestWindow)
	if err != nil {
		log.Printf("WARN: reset rate limit check failed for %s: %v", email, err)
	} else if limited {
		log.Printf("WARN: reset request rate limited for %s", email)
		return nil
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return fmt.Errorf("failed to look up admin for reset: %w", err)
	}
	if !admin.IsActive {
		return nil
	}

	raw := make([]byte, resetTokenByteLength)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	rt := &models.PasswordResetToken{
		ID:        uuid.New(),
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.tokenRepo.Create(ctx, rt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Mail failures stay server-side; the caller's response is generic
	// either way.
	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		log.Printf("WARN: failed to send reset email to %s: %v", email, err)
	}
	return nil
}

func (s *passwordResetService) Confirm(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	rt, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if isNoRows(err) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if rt.Used || rt.IsExpired() {
		return ErrInvalidToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.adminRepo.UpdatePasswordByEmail(ctx, rt.Email, hash); err != nil {
		if isNoRows(err) {
			// Admin deleted after the token was issued.
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	// MarkUsed only matches unused rows, so a concurrent confirm loses.
	if err := s.tokenRepo.MarkUsed(ctx, token); err != nil {
		if isNoRows(err) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	return nil
}
