package ports

import (
	"context"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
)

// CatalogCache keeps the last product list fetched successfully.
type CatalogCache interface {
	// Load reports ok=false when nothing is cached.
	Load(ctx context.Context) (products []domain.Product, ok bool, err error)
	Store(ctx context.Context, products []domain.Product) error
}
