package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/coordinator"
	"github.com/jcmexdev/cart-sync/internal/pkg/requestid"
)

var errItemNotInCart = errors.New("item not in cart")

// AddToCart adds one unit of product to the open order.
//
// A product already in the cart is incremented locally and then updated
// remotely; the increment is rolled back if the update fails. A new product
// is created remotely and the cart is then replaced by the backend's item
// list, so server-assigned ids and price snapshots are picked up. After
// ClearCart or a failed resync the backend's list is checked first, and a
// line it already holds for the product is incremented instead of created.
func (s *Store) AddToCart(ctx context.Context, product domain.Product) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.AddToCart",
		trace.WithAttributes(attribute.Int64("product.id", int64(product.ID))))
	defer span.End()

	order := s.Order()
	if err := requireOpenOrder(order); err != nil {
		return s.fail(ctx, span, opAddToCart, err)
	}

	var steps []coordinator.Step
	if s.Cart().IndexOf(product.ID) >= 0 {
		steps = s.changeQuantitySteps(product.ID, 1)
	} else {
		steps = s.createItemSteps(order.ID, product, s.isDetached())
	}

	if err := s.run(ctx, opAddToCart, order.ID, steps...); err != nil {
		return s.fail(ctx, span, opAddToCart, err)
	}
	return nil
}

// RemoveFromCart removes one unit of productID. The last unit is deleted
// remotely first and dropped locally only once the backend confirmed.
// Removing a product that is not in the cart is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID domain.ID) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.RemoveFromCart",
		trace.WithAttributes(attribute.Int64("product.id", int64(productID))))
	defer span.End()

	if s.Order().Paid {
		return s.fail(ctx, span, opRemoveItem, domain.ErrOrderPaid)
	}

	cart := s.Cart()
	idx := cart.IndexOf(productID)
	if idx < 0 {
		return nil
	}
	item := cart[idx]

	var steps []coordinator.Step
	if item.Quantity > 1 {
		steps = s.changeQuantitySteps(productID, -1)
	} else {
		steps = s.deleteItemSteps(item)
	}

	if err := s.run(ctx, opRemoveItem, item.OrderID, steps...); err != nil {
		return s.fail(ctx, span, opRemoveItem, err)
	}
	return nil
}

// ClearCart empties the local cart only. Remote items are left in place.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.detached = true
}

// GetOrderDetails fetches the backend's item list for the current order
// without touching the cart.
func (s *Store) GetOrderDetails(ctx context.Context) ([]domain.CartItem, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.GetOrderDetails")
	defer span.End()

	items, err := s.orderDetails(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, opOrderDetails, err)
	}
	return items, nil
}

// RefreshCart replaces the cart with the backend's item list.
func (s *Store) RefreshCart(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.RefreshCart")
	defer span.End()

	items, err := s.orderDetails(ctx)
	if err != nil {
		return s.fail(ctx, span, opOrderDetails, err)
	}
	s.setCart(items)
	return nil
}

func (s *Store) orderDetails(ctx context.Context) ([]domain.CartItem, error) {
	order := s.Order()
	if order.ID.IsZero() {
		return nil, domain.ErrNoOrder
	}
	return s.api.ListOrderItems(ctx, order.ID)
}

// changeQuantitySteps patches the local quantity first, then pushes the
// patched item. Compensation restores the local quantity.
func (s *Store) changeQuantitySteps(productID domain.ID, delta int) []coordinator.Step {
	var patched domain.CartItem

	apply := coordinator.NewStep("apply_quantity_locally",
		func(context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			idx := s.cart.IndexOf(productID)
			if idx < 0 {
				return fmt.Errorf("product %s: %w", productID, errItemNotInCart)
			}
			s.cart[idx].Quantity += delta
			patched = s.cart[idx]
			return nil
		},
		func(context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if idx := s.cart.IndexOf(productID); idx >= 0 {
				s.cart[idx].Quantity -= delta
			}
			return nil
		},
	)

	push := coordinator.NewStep("update_order_item",
		func(ctx context.Context) error {
			_, err := s.api.UpdateOrderItem(ctx, patched)
			return err
		}, nil)

	return []coordinator.Step{apply, push}
}

// createItemSteps creates the line remotely and resyncs the whole cart.
// With lookup set, the backend's list is read first and an existing line for
// the product gets its quantity bumped instead. When the resync fails the
// written line is folded in locally so a retry does not create a second line
// for the same product.
func (s *Store) createItemSteps(orderID domain.ID, product domain.Product, lookup bool) []coordinator.Step {
	var (
		existing *domain.CartItem
		written  domain.CartItem
	)

	var steps []coordinator.Step
	if lookup {
		steps = append(steps, coordinator.NewStep("find_remote_item",
			func(ctx context.Context) error {
				items, err := s.api.ListOrderItems(ctx, orderID)
				if err != nil {
					return err
				}
				if idx := domain.Cart(items).IndexOf(product.ID); idx >= 0 {
					item := items[idx]
					existing = &item
				}
				return nil
			}, nil))
	}

	steps = append(steps, coordinator.NewStep("write_order_item",
		func(ctx context.Context) error {
			var (
				item domain.CartItem
				err  error
			)
			if existing != nil {
				patched := *existing
				patched.Quantity++
				item, err = s.api.UpdateOrderItem(ctx, patched)
			} else {
				ctx = requestid.WithIdempotencyKey(ctx, uuid.NewString())
				item, err = s.api.CreateOrderItem(ctx, domain.CartItem{
					OrderID:     orderID,
					ProductID:   product.ID,
					ProductName: product.Name,
					Price:       product.Price,
					Quantity:    1,
				})
			}
			if err != nil {
				return err
			}
			written = item
			return nil
		}, nil))

	steps = append(steps, coordinator.NewStep("resync_cart",
		func(ctx context.Context) error {
			items, err := s.api.ListOrderItems(ctx, orderID)
			if err != nil {
				s.foldIn(written)
				return err
			}
			s.setCart(items)
			return nil
		}, nil))

	return steps
}

func (s *Store) foldIn(item domain.CartItem) {
	if item.ID.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
	if s.cart.IndexOf(item.ProductID) < 0 {
		s.cart = append(s.cart, item)
	}
}

func (s *Store) deleteItemSteps(item domain.CartItem) []coordinator.Step {
	remove := coordinator.NewStep("delete_order_item",
		func(ctx context.Context) error {
			return s.api.DeleteOrderItem(ctx, item.ID)
		}, nil)

	drop := coordinator.NewStep("drop_local_item",
		func(context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if idx := s.cart.IndexOf(item.ProductID); idx >= 0 {
				s.cart = append(s.cart[:idx:idx], s.cart[idx+1:]...)
			}
			return nil
		}, nil)

	return []coordinator.Step{remove, drop}
}
