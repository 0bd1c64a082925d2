// Package catalogcache keeps the last good product catalog in Redis.
package catalogcache

import (
	"context"
	"time"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/core/ports"
	"github.com/jcmexdev/cart-sync/internal/pkg/cache"
)

var _ ports.CatalogCache = (*CatalogCache)(nil)

type CatalogCache struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
}

func New(c cache.Cache, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: c,
		key:   c.GenerateKey("catalog", "products"),
		ttl:   ttl,
	}
}

func (c *CatalogCache) Load(ctx context.Context) ([]domain.Product, bool, error) {
	var products []domain.Product
	ok, err := cache.GetJSON(ctx, c.cache, c.key, &products)
	if err != nil || !ok {
		return nil, false, err
	}
	return products, true, nil
}

func (c *CatalogCache) Store(ctx context.Context, products []domain.Product) error {
	return cache.SetJSON(ctx, c.cache, c.key, products, c.ttl)
}
