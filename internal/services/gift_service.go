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

const giftListCacheTTL = 5 * time.Minute

type GiftRequest struct {
	Name        string  `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	Link        *string `json:"link" form:"link"`
	Link2       *string `json:"link2" form:"link2"`
	ImageURL    *string `json:"image_url" form:"image_url"`
	PriceRange  *string `json:"price_range" form:"price_range"`
}

type GiftService interface {
	// ListForChild returns the child's active gifts, unpurchased first,
	// creation time as the tiebreak.
	ListForChild(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error)
	Get(ctx context.Context, familyID, giftID uuid.UUID) (*models.Gift, error)
	Create(ctx context.Context, familyID, childID uuid.UUID, req *GiftRequest) (*models.Gift, error)
	Update(ctx context.Context, familyID, giftID uuid.UUID, req *GiftRequest) (*models.Gift, error)

	// Purchase marks a gift bought by the named relative. Concurrent
	// purchases are last-write-wins on the buyer name; duplicate gifts
	// are an inconvenience here, not a correctness problem.
	Purchase(ctx context.Context, familyID, giftID uuid.UUID, buyerName string) error
	Unmark(ctx context.Context, familyID, giftID uuid.UUID) error

	SoftDelete(ctx context.Context, familyID, giftID uuid.UUID) error
	Restore(ctx context.Context, giftID uuid.UUID) error
	ListDeleted(ctx context.Context, limit, offset int) ([]*models.DeletedGift, error)
	CountDeleted(ctx context.Context) (int, error)
}

type giftService struct {
	giftRepo  repositories.GiftRepository
	childRepo repositories.ChildRepository
	cacheSvc  caching.CacheService
}

func NewGiftService(giftRepo repositories.GiftRepository, childRepo repositories.ChildRepository, cacheSvc caching.CacheService) GiftService {
	return &giftService{
		giftRepo:  giftRepo,
		childRepo: childRepo,
		cacheSvc:  cacheSvc,
	}
}

func (s *giftService) ListForChild(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error) {
	if _, err := s.childRepo.GetByID(ctx, familyID, childID); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if cached, err := s.cacheSvc.GetChildGifts(ctx, familyID, childID); err == nil && cached != nil {
		return cached, nil
	}

	gifts, err := s.giftRepo.ListByChild(ctx, familyID, childID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetChildGifts(ctx, familyID, childID, gifts, giftListCacheTTL); err != nil {
		log.Printf("WARN: failed to cache gifts for child %s: %v", childID, err)
	}
	return gifts, nil
}

func (s *giftService) Get(ctx context.Context, familyID, giftID uuid.UUID) (*models.Gift, error) {
	gift, err := s.giftRepo.GetByID(ctx, familyID, giftID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return gift, nil
}

func (s *giftService) Create(ctx context.Context, familyID, childID uuid.UUID, req *GiftRequest) (*models.Gift, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("gift name is required")
	}

	gift := &models.Gift{
		ID:          uuid.New(),
		ChildID:     childID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Link:        req.Link,
		Link2:       req.Link2,
		ImageURL:    req.ImageURL,
		PriceRange:  req.PriceRange,
		CreatedAt:   time.Now(),
	}
	if err := s.giftRepo.Create(ctx, familyID, gift); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, familyID, childID)
	return gift, nil
}

func (s *giftService) Update(ctx context.Context, familyID, giftID uuid.UUID, req *GiftRequest) (*models.Gift, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("gift name is required")
	}

	gift, err := s.Get(ctx, familyID, giftID)
	if err != nil {
		return nil, err
	}
	gift.Name = strings.TrimSpace(req.Name)
	gift.Description = req.Description
	gift.Link = req.Link
	gift.Link2 = req.Link2
	gift.ImageURL = req.ImageURL
	gift.PriceRange = req.PriceRange

	if err := s.giftRepo.Update(ctx, familyID, gift); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, familyID, gift.ChildID)
	return gift, nil
}

func (s *giftService) Purchase(ctx context.Context, familyID, giftID uuid.UUID, buyerName string) error {
	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		return ErrBuyerNameRequired
	}

	// Soft-deleted gifts are filtered out by the scoped lookup, so a
	// purchase attempt on one reports not found.
	gift, err := s.Get(ctx, familyID, giftID)
	if err != nil {
		return err
	}

	if err := s.giftRepo.MarkPurchased(ctx, familyID, giftID, buyerName); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, familyID, gift.ChildID)
	return nil
}

func (s *giftService) Unmark(ctx context.Context, familyID, giftID uuid.UUID) error {
	gift, err := s.Get(ctx, familyID, giftID)
	if err != nil {
		return err
	}

	if err := s.giftRepo.UnmarkPurchased(ctx, familyID, giftID); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, familyID, gift.ChildID)
	return nil
}

func (s *giftService) SoftDelete(ctx context.Context, familyID, giftID uuid.UUID) error {
	gift, err := s.Get(ctx, familyID, giftID)
	if err != nil {
		return err
	}

	if err := s.giftRepo.SoftDelete(ctx, familyID, giftID); err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, familyID, gift.ChildID)
	return nil
}

// Restore brings a soft-deleted gift back. Only currently deleted gifts
// match, so restoring an active one reports not found.
func (s *giftService) Restore(ctx context.Context, giftID uuid.UUID) error {
	childID, familyID, err := s.giftRepo.Restore(ctx, giftID)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, familyID, childID)
	return nil
}

func (s *giftService) ListDeleted(ctx context.Context, limit, offset int) ([]*models.DeletedGift, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.giftRepo.ListDeleted(ctx, limit, offset)
}

func (s *giftService) CountDeleted(ctx context.Context) (int, error) {
	return s.giftRepo.CountDeleted(ctx)
}

func (s *giftService) invalidate(ctx context.Context, familyID, childID uuid.UUID) {
	if err := s.cacheSvc.DeleteChildGifts(ctx, familyID, childID); err != nil {
		log.Printf("WARN: failed to invalidate gift cache for child %s: %v", childID, err)
	}
}
