package services

import (
	"context"
	"testing"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FamilyServiceTestSuite struct {
	suite.Suite
	familyRepo *MockFamilyRepo
	adminRepo  *MockAdminUserRepo
	cacheSvc   *MockCacheService
	service    FamilyService
	familyID   uuid.UUID
	ctx        context.Context
}

func (suite *FamilyServiceTestSuite) SetupTest() {
	suite.familyRepo = &MockFamilyRepo{}
	suite.adminRepo = &MockAdminUserRepo{}
	suite.cacheSvc = &MockCacheService{}
	suite.service = NewFamilyService(suite.familyRepo, suite.adminRepo, suite.cacheSvc)
	suite.familyID = uuid.New()
	suite.ctx = context.Background()

	suite.familyRepo.Test(suite.T())
	suite.adminRepo.Test(suite.T())
	suite.cacheSvc.Test(suite.T())
}

func (suite *FamilyServiceTestSuite) TearDownTest() {
	suite.familyRepo.AssertExpectations(suite.T())
	suite.adminRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func TestFamilyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FamilyServiceTestSuite))
}

func (suite *FamilyServiceTestSuite) TestCreate_HashesPassword() {
	suite.familyRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Family")).Return(nil).Run(func(args mock.Arguments) {
		family := args.Get(1).(*models.Family)
		assert.Equal(suite.T(), "The Parkers", family.Name)
		assert.True(suite.T(), family.IsActive)
		assert.NotEqual(suite.T(), "winter-2024", family.PasswordHash)
		assert.True(suite.T(), VerifyPassword("winter-2024", family.PasswordHash))
	})

	family, err := suite.service.Create(suite.ctx, &CreateFamilyRequest{Name: " The Parkers ", Password: "winter-2024"})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), family)
}

func (suite *FamilyServiceTestSuite) TestCreate_ShortPassword() {
	family, err := suite.service.Create(suite.ctx, &CreateFamilyRequest{Name: "The Parkers", Password: "short"})
	assert.Nil(suite.T(), family)
	assert.Error(suite.T(), err)
}

func (suite *FamilyServiceTestSuite) TestDeactivate_InvalidatesCache() {
	suite.familyRepo.On("SetActive", suite.ctx, suite.familyID, false).Return(nil)
	suite.cacheSvc.On("InvalidateFamilyCache", suite.ctx, suite.familyID).Return(nil)

	err := suite.service.Deactivate(suite.ctx, suite.familyID)
	assert.NoError(suite.T(), err)
}

func (suite *FamilyServiceTestSuite) TestDeactivate_MissingFamily() {
	suite.familyRepo.On("SetActive", suite.ctx, suite.familyID, false).Return(pgx.ErrNoRows)

	err := suite.service.Deactivate(suite.ctx, suite.familyID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *FamilyServiceTestSuite) TestDeleteAdmin_LastActiveAdminBlocked() {
	admin := &models.AdminUser{
		ID:       uuid.New(),
		FamilyID: suite.familyID,
		Email:    "mom@example.com",
		IsActive: true,
	}

	suite.adminRepo.On("GetByID", suite.ctx, admin.ID).Return(admin, nil)
	suite.adminRepo.On("CountActiveByFamily", suite.ctx, suite.familyID).Return(1, nil)

	err := suite.service.DeleteAdmin(suite.ctx, admin.ID)
	assert.ErrorIs(suite.T(), err, ErrLastAdmin)
	suite.adminRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *FamilyServiceTestSuite) TestDeleteAdmin_SucceedsWithAnotherActive() {
	admin := &models.AdminUser{
		ID:       uuid.New(),
		FamilyID: suite.familyID,
		IsActive: true,
	}

	suite.adminRepo.On("GetByID", suite.ctx, admin.ID).Return(admin, nil)
	suite.adminRepo.On("CountActiveByFamily", suite.ctx, suite.familyID).Return(2, nil)
	suite.adminRepo.On("Delete", suite.ctx, admin.ID).Return(nil)

	err := suite.service.DeleteAdmin(suite.ctx, admin.ID)
	assert.NoError(suite.T(), err)
}

// Deleting an already-inactive admin never trips the guard; the family's
// active count is unchanged by it.
func (suite *FamilyServiceTestSuite) TestDeleteAdmin_InactiveAdminSkipsGuard() {
	admin := &models.AdminUser{
		ID:       uuid.New(),
		FamilyID: suite.familyID,
		IsActive: false,
	}

	suite.adminRepo.On("GetByID", suite.ctx, admin.ID).Return(admin, nil)
	suite.adminRepo.On("Delete", suite.ctx, admin.ID).Return(nil)

	err := suite.service.DeleteAdmin(suite.ctx, admin.ID)
	assert.NoError(suite.T(), err)
	suite.adminRepo.AssertNotCalled(suite.T(), "CountActiveByFamily", mock.Anything, mock.Anything)
}

func (suite *FamilyServiceTestSuite) TestUpdateAdmin_DeactivatingLastAdminBlocked() {
	admin := &models.AdminUser{
		ID:       uuid.New(),
		FamilyID: suite.familyID,
		Email:    "mom@example.com",
		IsActive: true,
	}

	suite.adminRepo.On("GetByID", suite.ctx, admin.ID).Return(admin, nil)
	suite.adminRepo.On("CountActiveByFamily", suite.ctx, suite.familyID).Return(1, nil)

	got, err := suite.service.UpdateAdmin(suite.ctx, admin.ID, &AdminRequest{Email: admin.Email, IsActive: boolPtr(false)})
	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, ErrLastAdmin)
}

// An update that omits is_active must not change the active flag; only an
// explicit false deactivates (and only then does the last-admin guard run).
func (suite *FamilyServiceTestSuite) TestUpdateAdmin_OmittedIsActiveKeepsState() {
	admin := &models.AdminUser{
		ID:       uuid.New(),
		FamilyID: suite.familyID,
		Email:    "mom@example.com",
		IsActive: true,
	}

	suite.adminRepo.On("GetByID", suite.ctx, admin.ID).Return(admin, nil)
	suite.adminRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.AdminUser")).Return(nil).Run(func(args mock.Arguments) {
		updated := args.Get(1).(*models.AdminUser)
		assert.True(suite.T(), updated.IsActive)
		assert.Equal(suite.T(), "dad@example.com", updated.Email)
	})
	suite.adminRepo.On("GetByEmail", suite.ctx, "dad@example.com").Return(nil, pgx.ErrNoRows)

	got, err := suite.service.UpdateAdmin(suite.ctx, admin.ID, &AdminRequest{Email: "dad@example.com"})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.IsActive)
	suite.adminRepo.AssertNotCalled(suite.T(), "CountActiveByFamily", mock.Anything, mock.Anything)
}

func (suite *FamilyServiceTestSuite) TestUpdateAdmin_ExplicitReactivate() {
	admin := &models.AdminUser{
		ID:       uuid.New(),
		FamilyID: suite.familyID,
		Email:    "mom@example.com",
		IsActive: false,
	}

	suite.adminRepo.On("GetByID", suite.ctx, admin.ID).Return(admin, nil)
	suite.adminRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.AdminUser")).Return(nil)

	got, err := suite.service.UpdateAdmin(suite.ctx, admin.ID, &AdminRequest{IsActive: boolPtr(true)})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.IsActive)
	suite.adminRepo.AssertNotCalled(suite.T(), "CountActiveByFamily", mock.Anything, mock.Anything)
}

func boolPtr(b bool) *bool {
	return &b
}

func (suite *FamilyServiceTestSuite) TestCreateAdmin_DuplicateEmail() {
	family := &models.Family{ID: suite.familyID, IsActive: true}
	existing := &models.AdminUser{ID: uuid.New(), Email: "mom@example.com"}

	suite.familyRepo.On("GetByID", suite.ctx, suite.familyID).Return(family, nil)
	suite.adminRepo.On("GetByEmail", suite.ctx, "mom@example.com").Return(existing, nil)

	admin, err := suite.service.CreateAdmin(suite.ctx, suite.familyID, &AdminRequest{Email: "mom@example.com", Password: "long-enough-pass"})
	assert.Nil(suite.T(), admin)
	assert.Error(suite.T(), err)
	suite.adminRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}
