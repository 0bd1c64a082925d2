package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/pkg/requestid"
)

func TestCreateOrderItemSnapshotsProduct(t *testing.T) {
	b := NewBackend(domain.PlaceholderCatalog())
	ctx := context.Background()

	order, err := b.CreateOrder(ctx, "Ana")
	require.NoError(t, err)

	item, err := b.CreateOrderItem(ctx, domain.CartItem{OrderID: order.ID, ProductID: 2, Quantity: 1})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Product 2", item.ProductName)
	assert.Equal(t, "200", item.Price.String())

	items, err := b.ListOrderItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.CartItem{item}, items)
}

func TestCreateOrderItemIsIdempotentPerKey(t *testing.T) {
	b := NewBackend(domain.PlaceholderCatalog())
	order, err := b.CreateOrder(context.Background(), "Ana")
	require.NoError(t, err)

	ctx := requestid.WithIdempotencyKey(context.Background(), "key-1")
	first, err := b.CreateOrderItem(ctx, domain.CartItem{OrderID: order.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	second, err := b.CreateOrderItem(ctx, domain.CartItem{OrderID: order.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	items, err := b.ListOrderItems(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCreateOrderItemUnknownProduct(t *testing.T) {
	b := NewBackend(domain.PlaceholderCatalog())
	order, err := b.CreateOrder(context.Background(), "Ana")
	require.NoError(t, err)

	_, err = b.CreateOrderItem(context.Background(), domain.CartItem{OrderID: order.ID, ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFailNextIsConsumedOnce(t *testing.T) {
	b := NewBackend(domain.PlaceholderCatalog())
	boom := errors.New("boom")
	b.FailNext(OpListProducts, boom)

	_, err := b.ListProducts(context.Background())
	assert.ErrorIs(t, err, boom)

	products, err := b.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, 2, b.CallCount(OpListProducts))
}

func TestCheckoutLocksOrder(t *testing.T) {
	b := NewBackend(domain.PlaceholderCatalog())
	ctx := context.Background()
	order, err := b.CreateOrder(ctx, "Ana")
	require.NoError(t, err)
	item, err := b.CreateOrderItem(ctx, domain.CartItem{OrderID: order.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, b.Checkout(ctx, order.ID))
	stored, ok := b.Order(order.ID)
	require.True(t, ok)
	assert.True(t, stored.Paid)

	assert.ErrorIs(t, b.Checkout(ctx, order.ID), domain.ErrOrderPaid)
	assert.ErrorIs(t, b.DeleteOrderItem(ctx, item.ID), domain.ErrOrderPaid)
}
