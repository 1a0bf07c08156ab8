package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"giftnest/internal/caching"
	"giftnest/internal/models"
	"giftnest/internal/repositories"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type CreateFamilyRequest struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

type UpdateFamilyRequest struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"` // empty keeps the current hash
}

// AdminRequest is a partial update: empty email and password keep the
// current values, and a nil IsActive leaves the active flag unchanged.
type AdminRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	IsActive *bool  `json:"is_active" form:"is_active"`
}

// FamilyService is the superadmin surface: family and admin lifecycle for
// the whole platform.
type FamilyService interface {
	List(ctx context.Context, limit, offset int) ([]*models.Family, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Family, error)
	Create(ctx context.Context, req *CreateFamilyRequest) (*models.Family, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateFamilyRequest) (*models.Family, error)

	// Deactivate blocks family and admin logins without destroying data.
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	ListAdmins(ctx context.Context, familyID uuid.UUID) ([]*models.AdminUser, error)
	CreateAdmin(ctx context.Context, familyID uuid.UUID, req *AdminRequest) (*models.AdminUser, error)
	UpdateAdmin(ctx context.Context, adminID uuid.UUID, req *AdminRequest) (*models.AdminUser, error)

	// DeleteAdmin removes an admin unless it is the family's last active
	// one, which returns ErrLastAdmin.
	DeleteAdmin(ctx context.Context, adminID uuid.UUID) error
}

type familyService struct {
	familyRepo repositories.FamilyRepository
	adminRepo  repositories.AdminUserRepository
	cacheSvc   caching.CacheService
}

func NewFamilyService(familyRepo repositories.FamilyRepository, adminRepo repositories.AdminUserRepository, cacheSvc caching.CacheService) FamilyService {
	return &familyService{
		familyRepo: familyRepo,
		adminRepo:  adminRepo,
		cacheSvc:   cacheSvc,
	}
}

func (s *familyService) List(ctx context.Context, limit, offset int) ([]*models.Family, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.familyRepo.List(ctx, limit, offset)
}

func (s *familyService) Get(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	family, err := s.familyRepo.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return family, nil
}

func (s *familyService) Create(ctx context.Context, req *CreateFamilyRequest) (*models.Family, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("family name is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash family password: %w", err)
	}

	family := &models.Family{
		ID:           uuid.New(),
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.familyRepo.Create(ctx, family); err != nil {
		return nil, err
	}
	return family, nil
}

func (s *familyService) Update(ctx context.Context, id uuid.UUID, req *UpdateFamilyRequest) (*models.Family, error) {
	family, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		family.Name = name
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash family password: %w", err)
		}
		family.PasswordHash = hash
	}

	if err := s.familyRepo.Update(ctx, family); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return family, nil
}

func (s *familyService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.familyRepo.SetActive(ctx, id, false); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	if err := s.cacheSvc.InvalidateFamilyCache(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate cache for family %s: %v", id, err)
	}
	return nil
}

func (s *familyService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.familyRepo.SetActive(ctx, id, true); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *familyService) ListAdmins(ctx context.Context, familyID uuid.UUID) ([]*models.AdminUser, error) {
	if _, err := s.Get(ctx, familyID); err != nil {
		return nil, err
	}
	return s.adminRepo.ListByFamily(ctx, familyID)
}

func (s *familyService) CreateAdmin(ctx context.Context, familyID uuid.UUID, req *AdminRequest) (*models.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.Get(ctx, familyID); err != nil {
		return nil, err
	}

	// Admin emails are unique across the platform, not per family.
	if existing, err := s.adminRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s is already registered", email)
	} else if err != nil && !isNoRows(err) {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.AdminUser{
		ID:           uuid.New(),
		FamilyID:     familyID,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *familyService) UpdateAdmin(ctx context.Context, adminID uuid.UUID, req *AdminRequest) (*models.AdminUser, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != admin.Email {
		if existing, err := s.adminRepo.GetByEmail(ctx, email); err == nil && existing != nil {
			return nil, fmt.Errorf("email %s is already registered", email)
		} else if err != nil && !isNoRows(err) {
			return nil, err
		}
		admin.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLength {
			return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin.PasswordHash = hash
	}

	// Deactivating the last active admin would orphan the family the same
	// way deleting it would.
	if req.IsActive != nil {
		if admin.IsActive && !*req.IsActive {
			count, err := s.adminRepo.CountActiveByFamily(ctx, admin.FamilyID)
			if err != nil {
				return nil, err
			}
			if count <= 1 {
				return nil, ErrLastAdmin
			}
		}
		admin.IsActive = *req.IsActive
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *familyService) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if admin.IsActive {
		count, err := s.adminRepo.CountActiveByFamily(ctx, admin.FamilyID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.adminRepo.Delete(ctx, adminID); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
