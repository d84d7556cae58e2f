package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogstore/internal/models"
)

type CacheService interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, id int64) error
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
	return &redisCacheService{client: client}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct returns the cached product, or nil on a cache miss.
func (s *redisCacheService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := s.client.Get(ctx, productKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	product := &models.Product{}
	if err := json.Unmarshal([]byte(data), product); err != nil {
		return nil, fmt.Errorf("failed to decode cached product %d: %w", id, err)
	}
	return product, nil
}

func (s *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product %d: %w", product.ID, err)
	}
	return s.client.Set(ctx, productKey(product.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteProduct(ctx context.Context, id int64) error {
	return s.client.Del(ctx, productKey(id)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
