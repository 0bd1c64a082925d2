package ports

import (
	"context"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
)

// OrderAPI is the remote order backend. Implementations are stateless
// request/response boundaries; the cart store owns all local state.
type OrderAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)

	CreateOrder(ctx context.Context, username string) (domain.Order, error)
	UpdateOrder(ctx context.Context, id domain.ID, username string) (domain.Order, error)

	// ListOrderItems returns the authoritative item list of an order.
	ListOrderItems(ctx context.Context, orderID domain.ID) ([]domain.CartItem, error)
	CreateOrderItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateOrderItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	DeleteOrderItem(ctx context.Context, id domain.ID) error

	Checkout(ctx context.Context, orderID domain.ID) error
}
