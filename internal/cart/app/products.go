package app

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/coordinator"
)

// FetchProducts loads the catalog. On failure the last cached catalog, or
// else the placeholder catalog, is shown and the error is recorded.
func (s *Store) FetchProducts(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.FetchProducts")
	defer span.End()

	done := s.beginLoading()
	defer done()

	var products []domain.Product
	err := s.run(ctx, opFetchProducts, 0, coordinator.NewStep("list_products",
		func(ctx context.Context) error {
			var err error
			products, err = s.api.ListProducts(ctx)
			return err
		}, nil))
	if err != nil {
		s.setProducts(s.fallbackCatalog(ctx))
		return s.fail(ctx, span, opFetchProducts, err)
	}

	s.setProducts(products)
	if s.catalog != nil {
		if err := s.catalog.Store(ctx, products); err != nil {
			slog.WarnContext(ctx, "failed to cache catalog", "error", err)
		}
	}
	return nil
}

func (s *Store) fallbackCatalog(ctx context.Context) []domain.Product {
	if s.catalog != nil {
		cached, ok, err := s.catalog.Load(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to read cached catalog", "error", err)
		}
		if ok && len(cached) > 0 {
			return cached
		}
	}
	return domain.PlaceholderCatalog()
}

func (s *Store) setProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]domain.Product(nil), products...)
}
