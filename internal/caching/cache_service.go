package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"giftnest/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Child gift listing cache
	GetChildGifts(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error)
	SetChildGifts(ctx context.Context, familyID, childID uuid.UUID, gifts []*models.Gift, ttl time.Duration) error
	DeleteChildGifts(ctx context.Context, familyID, childID uuid.UUID) error
	InvalidateFamilyCache(ctx context.Context, familyID uuid.UUID) error

	// Rate limiting (password-reset requests)
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

func childGiftsKey(familyID, childID uuid.UUID) string {
	return fmt.Sprintf("giftnest:gifts:%s:%s", familyID.String(), childID.String())
}

func (r *redisCacheService) GetChildGifts(ctx context.Context, familyID, childID uuid.UUID) ([]*models.Gift, error) {
	data, err := r.client.Get(ctx, childGiftsKey(familyID, childID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var gifts []*models.Gift
	if err := json.Unmarshal(data, &gifts); err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *redisCacheService) SetChildGifts(ctx context.Context, familyID, childID uuid.UUID, gifts []*models.Gift, ttl time.Duration) error {
	data, err := json.Marshal(gifts)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, childGiftsKey(familyID, childID), data, ttl).Err()
}

func (r *redisCacheService) DeleteChildGifts(ctx context.Context, familyID, childID uuid.UUID) error {
	return r.client.Del(ctx, childGiftsKey(familyID, childID)).Err()
}

func (r *redisCacheService) InvalidateFamilyCache(ctx context.Context, familyID uuid.UUID) error {
	pattern := fmt.Sprintf("giftnest:gifts:%s:*", familyID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("giftnest:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
