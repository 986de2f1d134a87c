package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
)

const (
	defaultProductTTL = 5 * time.Minute
	productListKey    = "products:all"
)

// ProductCache stores JSON-encoded products in Redis.
// Key format: product:<id> and products:all for the full catalog.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache wraps client. A ttl <= 0 falls back to defaultProductTTL.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultProductTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, bool, error) {
	var p domain.Product
	ok, err := c.get(ctx, c.key(id), &p)
	if !ok {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *ProductCache) Set(ctx context.Context, p *domain.Product) error {
	return c.set(ctx, c.key(p.ID), p)
}

func (c *ProductCache) GetList(ctx context.Context) ([]*domain.Product, bool, error) {
	var products []*domain.Product
	ok, err := c.get(ctx, productListKey, &products)
	if !ok {
		return nil, false, err
	}
	return products, true, nil
}

func (c *ProductCache) SetList(ctx context.Context, products []*domain.Product) error {
	return c.set(ctx, productListKey, products)
}

// Invalidate removes the product entry (when id is set) and the catalog list.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	keys := []string{productListKey}
	if id != "" {
		keys = append(keys, c.key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("product cache invalidate: %w", err)
	}
	return nil
}

func (c *ProductCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ProductCacheLookupsTotal.WithLabelValues("miss").Inc()
			return false, nil
		}
		metrics.ProductCacheLookupsTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("product cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.ProductCacheLookupsTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("product cache decode: %w", err)
	}
	metrics.ProductCacheLookupsTotal.WithLabelValues("hit").Inc()
	return true, nil
}

func (c *ProductCache) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("product cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *ProductCache) key(id string) string {
	return "product:" + id
}
