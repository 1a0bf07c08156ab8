package services

import (
	"context"
	"time"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFamilyRepo struct {
	mock.Mock
}

func (m *MockFamilyRepo) Create(ctx context.Context, family *models.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *MockFamilyRepo) Update(ctx context.Context, family *models.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyRepo) List(ctx context.Context, limit, offset int) ([]*models.Family, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Family), args.Error(1)
}

func (m *MockFamilyRepo) ListActive(ctx context.Context) ([]*models.Family, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Family), args.Error(1)
}

func (m *MockFamilyRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockAdminUserRepo struct {
	mock.Mock
}

func (m *MockAdminUserRepo) Create(ctx context.Context, admin *models.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepo) Update(ctx context.Context, admin *models.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminUserRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.AdminUser, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepo) CountActiveByFamily(ctx context.Context, familyID uuid.UUID) (int, error) {
	args := m.Called(ctx, familyID)
	return args.Int(0), args.Error(1)
}

func (m *MockAdminUserRepo) RecordLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminUserRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

type MockSuperAdminRepo struct {
	mock.Mock
}

func (m *MockSuperAdminRepo) Create(ctx context.Context, superadmin *models.SuperAdmin) error {
	args := m.Called(ctx, superadmin)
	return args.Error(0)
}

func (m *MockSuperAdminRepo) GetByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuperAdmin), args.Error(1)
}

type MockChildRepo struct {
	mock.Mock
}

func (m *MockChildRepo) Create(ctx context.Context, child *models.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildRepo) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Child, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Child), args.Error(1)
}

func (m *MockChildRepo) Update(ctx context.Context, child *models.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildRepo) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}

func (m *MockChildRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Child, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Child), args.Error(1)
}

type MockGiftRepo struct {
	mock.Mock
}

func (m *MockGiftRepo) Create(ctx context.Context, familyID uuid.UUID, gift *models.Gift) error {
	args := m.Called(ctx, familyID, gift)
	return args.Error(0)
}

func (m *MockGiftRepo) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Gift, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gift), args.Error(1)
}

func (m *MockGiftRepo) Update(ctx context.Context, familyID uuid.UUID, gift *models.Gift) error {
	args := m.Called(ctx, familyID, gift)
	return args.Error(0)
}

func (m *MockGiftRepo) ListByChild(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error) {
	args := m.Called(ctx, familyID, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gift), args.Error(1)
}

func (m *MockGiftRepo) MarkPurchased(ctx context.Context, familyID, id uuid.UUID, buyerName string) error {
	args := m.Called(ctx, familyID, id, buyerName)
	return args.Error(0)
}

func (m *MockGiftRepo) UnmarkPurchased(ctx context.Context, familyID, id uuid.UUID) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}

func (m *MockGiftRepo) SoftDelete(ctx context.Context, familyID, id uuid.UUID) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}

func (m *MockGiftRepo) Restore(ctx context.Context, id uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Get(1).(uuid.UUID), args.Error(2)
}

func (m *MockGiftRepo) ListDeleted(ctx context.Context, limit, offset int) ([]*models.DeletedGift, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeletedGift), args.Error(1)
}

func (m *MockGiftRepo) CountDeleted(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockResetTokenRepo struct {
	mock.Mock
}

func (m *MockResetTokenRepo) Create(ctx context.Context, token *models.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepo) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordResetToken), args.Error(1)
}

func (m *MockResetTokenRepo) MarkUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetChildGifts(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error) {
	args := m.Called(ctx, familyID, childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gift), args.Error(1)
}

func (m *MockCacheService) SetChildGifts(ctx context.Context, familyID, childID uuid.UUID, gifts []*models.Gift, ttl time.Duration) error {
	args := m.Called(ctx, familyID, childID, gifts, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteChildGifts(ctx context.Context, familyID, childID uuid.UUID) error {
	args := m.Called(ctx, familyID, childID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateFamilyCache(ctx context.Context, familyID uuid.UUID) error {
	args := m.Called(ctx, familyID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	args := m.Called(ctx, toEmail, token)
	return args.Error(0)
}

func (m *MockMailer) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
