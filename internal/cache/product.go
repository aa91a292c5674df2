package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lojinha/api/internal/domain"
)

const (
	productKeyPrefix = "produto:"
	productListKey   = "produtos:lista"
)

// ErrMiss is returned when the requested entry is not cached.
var ErrMiss = errors.New("cache miss")

// ProductCache is a Redis read-through cache for catalog lookups. Cart adds
// hit the product collection on every call; caching the hot products keeps
// that read off the database.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a product cache with the given TTL.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// GetProduct fetches a cached product by its hex id. Returns ErrMiss when absent.
func (c *ProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get product: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal cached product: %w", err)
	}
	return &product, nil
}

// SetProduct stores a product under its hex id with the configured TTL.
func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	if err := c.client.Set(ctx, productKeyPrefix+product.ID.Hex(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set product: %w", err)
	}
	return nil
}

// GetList fetches the cached full catalog listing. Returns ErrMiss when absent.
func (c *ProductCache) GetList(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get product list: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal cached product list: %w", err)
	}
	return products, nil
}

// SetList stores the full catalog listing with the configured TTL.
func (c *ProductCache) SetList(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal product list: %w", err)
	}

	if err := c.client.Set(ctx, productListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set product list: %w", err)
	}
	return nil
}

// InvalidateList drops the cached listing. Called after catalog writes.
func (c *ProductCache) InvalidateList(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("redis del product list: %w", err)
	}
	return nil
}
