package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"giftnest/internal/models"
	"giftnest/internal/repositories"

	"github.com/google/uuid"
)

// AuthService authenticates the three principal kinds. Session issuance is
// the middleware's job; this service only decides who the caller is.
type AuthService interface {
	// FamilyLogin verifies the shared family password against every
	// active family's hash in turn. First match wins. bcrypt hashes are
	// salted, so there is no lookup by hash and the scan is unavoidable
	// under the shared-secret model.
	FamilyLogin(ctx context.Context, password string) (*models.Family, error)

	// AdminLogin resolves the admin by unique email, verifies the
	// password, and returns the admin together with its owning family.
	// Admin login implies family login.
	AdminLogin(ctx context.Context, email, password string) (*models.AdminUser, *models.Family, error)

	// SuperadminLogin verifies a platform superadmin, independent of any
	// family state.
	SuperadminLogin(ctx context.Context, email, password string) (*models.SuperAdmin, error)

	// EnsureSuperadmin provisions the platform superadmin at startup when
	// no account exists for the email. An existing account is left
	// untouched, password included.
	EnsureSuperadmin(ctx context.Context, email, password string) error
}

type authService struct {
	familyRepo     repositories.FamilyRepository
	adminRepo      repositories.AdminUserRepository
	superadminRepo repositories.SuperAdminRepository
}

func NewAuthService(familyRepo repositories.FamilyRepository, adminRepo repositories.AdminUserRepository, superadminRepo repositories.SuperAdminRepository) AuthService {
	return &authService{
		familyRepo:     familyRepo,
		adminRepo:      adminRepo,
		superadminRepo: superadminRepo,
	}
}

func (s *authService) FamilyLogin(ctx context.Context, password string) (*models.Family, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	families, err := s.familyRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}

	for _, family := range families {
		if VerifyPassword(password, family.PasswordHash) {
			return family, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (*models.AdminUser, *models.Family, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if !admin.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, admin.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	family, err := s.familyRepo.GetByID(ctx, admin.FamilyID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to load admin family: %w", err)
	}
	if !family.IsActive {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.adminRepo.RecordLogin(ctx, admin.ID); err != nil {
		// Login still succeeds if the timestamp write fails.
		log.Printf("WARN: failed to record admin login for %s: %v", admin.ID, err)
	}

	return admin, family, nil
}

func (s *authService) SuperadminLogin(ctx context.Context, email, password string) (*models.SuperAdmin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	superadmin, err := s.superadminRepo.GetByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up superadmin: %w", err)
	}
	if !superadmin.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, superadmin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return superadmin, nil
}

func (s *authService) EnsureSuperadmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("superadmin email and password are required")
	}

	if _, err := s.superadminRepo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !isNoRows(err) {
		return fmt.Errorf("failed to look up superadmin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash superadmin password: %w", err)
	}

	superadmin := &models.SuperAdmin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.superadminRepo.Create(ctx, superadmin); err != nil {
		return fmt.Errorf("failed to create superadmin: %w", err)
	}
	log.Printf("Provisioned superadmin account for %s", email)
	return nil
}
