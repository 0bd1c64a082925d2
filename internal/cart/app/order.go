package app

import (
	"context"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/coordinator"
)

// CreateOrder opens a remote order for the session user name. It does not
// require the name to be set; ConfirmPayment does.
func (s *Store) CreateOrder(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.CreateOrder")
	defer span.End()

	done := s.beginLoading()
	defer done()

	username := s.UserName()
	var order domain.Order
	err := s.run(ctx, opCreateOrder, 0, coordinator.NewStep("create_order",
		func(ctx context.Context) error {
			var err error
			order, err = s.api.CreateOrder(ctx, username)
			return err
		}, nil))
	if err != nil {
		return s.fail(ctx, span, opCreateOrder, err)
	}

	s.setOrder(order)
	return nil
}

// UpdateOrder pushes the session user name to the open order.
func (s *Store) UpdateOrder(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.UpdateOrder")
	defer span.End()

	done := s.beginLoading()
	defer done()

	current := s.Order()
	if current.ID.IsZero() {
		return s.fail(ctx, span, opUpdateOrder, domain.ErrNoOrder)
	}

	username := s.UserName()
	var order domain.Order
	err := s.run(ctx, opUpdateOrder, current.ID, coordinator.NewStep("update_order",
		func(ctx context.Context) error {
			var err error
			order, err = s.api.UpdateOrder(ctx, current.ID, username)
			return err
		}, nil))
	if err != nil {
		return s.fail(ctx, span, opUpdateOrder, err)
	}

	s.setOrder(order)
	return nil
}

// ClearOrder forgets the current order. The cart is left untouched.
func (s *Store) ClearOrder() {
	s.setOrder(domain.EmptyOrder())
}

func (s *Store) setOrder(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
}

func requireOpenOrder(order domain.Order) error {
	switch order.State() {
	case domain.StateNoOrder:
		return domain.ErrNoOrder
	case domain.StateOrderPaid:
		return domain.ErrOrderPaid
	}
	return nil
}
