package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/coordinator"
)

// ConfirmPayment checks out the open order and returns the confirmation
// message. Preconditions are checked locally before any remote call and
// fail with *domain.ValidationError; a rejected checkout fails with
// *domain.PaymentError. Neither is recorded as the store's last error.
func (s *Store) ConfirmPayment(ctx context.Context) (string, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx, span := tracer.Start(ctx, "cart.ConfirmPayment")
	defer span.End()

	s.mu.RLock()
	userName := s.userName
	cart := s.cart.Clone()
	order := s.order
	s.mu.RUnlock()

	if err := validateCheckout(userName, cart, order); err != nil {
		span.SetStatus(codes.Error, err.Error())
		slog.WarnContext(ctx, "checkout rejected locally", "reason", err.Error())
		return "", err
	}

	total := cart.Total()
	err := s.run(ctx, opCheckout, order.ID, coordinator.NewStep("checkout",
		func(ctx context.Context) error {
			return s.api.Checkout(ctx, order.ID)
		}, nil))
	if err != nil {
		payErr := &domain.PaymentError{OrderID: order.ID, Err: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, payErr.Error())
		slog.ErrorContext(ctx, "error confirming payment", "order_id", order.ID.String(), "error", err)
		return "", payErr
	}

	s.mu.Lock()
	if s.order.ID == order.ID {
		s.order.Paid = true
	}
	s.mu.Unlock()

	return fmt.Sprintf("¡Gracias %s! Tu compra de $%s ha sido confirmada.", order.Username, total.String()), nil
}

func validateCheckout(userName string, cart domain.Cart, order domain.Order) error {
	if strings.TrimSpace(userName) == "" {
		return domain.NewValidationError(domain.ErrMsgUserNameRequired)
	}
	if cart.IsEmpty() {
		return domain.NewValidationError(domain.ErrMsgCartEmpty)
	}
	if order.ID.IsZero() {
		return domain.NewValidationError(domain.ErrMsgNoOrder)
	}
	if order.Paid {
		return domain.NewValidationError(domain.ErrMsgOrderPaid)
	}
	return nil
}
