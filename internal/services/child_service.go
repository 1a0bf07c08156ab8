package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"giftnest/internal/caching"
	"giftnest/internal/models"
	"giftnest/internal/repositories"

	"github.com/google/uuid"
)

type CreateChildRequest struct {
	Name string `json:"name" form:"name"`
	Age  *int   `json:"age" form:"age"`
}

type ChildService interface {
	ListForFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Child, error)
	Get(ctx context.Context, familyID, childID uuid.UUID) (*models.Child, error)
	Create(ctx context.Context, familyID uuid.UUID, req *CreateChildRequest) (*models.Child, error)
	Update(ctx context.Context, familyID, childID uuid.UUID, req *CreateChildRequest) (*models.Child, error)
	Delete(ctx context.Context, familyID, childID uuid.UUID) error
}

type childService struct {
	childRepo repositories.ChildRepository
	cacheSvc  caching.CacheService
}

func NewChildService(childRepo repositories.ChildRepository, cacheSvc caching.CacheService) ChildService {
	return &childService{childRepo: childRepo, cacheSvc: cacheSvc}
}

func (s *childService) ListForFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Child, error) {
	return s.childRepo.ListByFamily(ctx, familyID)
}

func (s *childService) Get(ctx context.Context, familyID, childID uuid.UUID) (*models.Child, error) {
	child, err := s.childRepo.GetByID(ctx, familyID, childID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return child, nil
}

func (s *childService) Create(ctx context.Context, familyID uuid.UUID, req *CreateChildRequest) (*models.Child, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	child := &models.Child{
		ID:        uuid.New(),
		FamilyID:  familyID,
		Name:      req.Name,
		Age:       req.Age,
		CreatedAt: time.Now(),
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childService) Update(ctx context.Context, familyID, childID uuid.UUID, req *CreateChildRequest) (*models.Child, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	child, err := s.Get(ctx, familyID, childID)
	if err != nil {
		return nil, err
	}
	child.Name = req.Name
	child.Age = req.Age

	if err := s.childRepo.Update(ctx, child); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return child, nil
}

// Delete hard-deletes the child and every gift under it, deleted or not.
func (s *childService) Delete(ctx context.Context, familyID, childID uuid.UUID) error {
	if err := s.childRepo.Delete(ctx, familyID, childID); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	if err := s.cacheSvc.DeleteChildGifts(ctx, familyID, childID); err != nil {
		log.Printf("WARN: failed to invalidate gift cache for child %s: %v", childID, err)
	}
	return nil
}
