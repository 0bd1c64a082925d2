package app_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/cart-sync/internal/cart/app"
	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/infra/adapters/memory"
	"github.com/jcmexdev/cart-sync/internal/cart/infra/adapters/orderapi"
	"github.com/jcmexdev/cart-sync/internal/cart/infra/httpx"
)

func TestStoreAgainstHTTPBackend(t *testing.T) {
	backend := memory.NewBackend(domain.PlaceholderCatalog())
	srv := httptest.NewServer(httpx.NewRouter(httpx.NewHandler(backend)))
	defer srv.Close()

	store := app.NewStore(orderapi.NewClient(srv.URL+"/api", 5*time.Second), app.WithUserName("Ana"))
	ctx := context.Background()

	require.NoError(t, store.FetchProducts(ctx))
	products := store.Products()
	require.Len(t, products, 3)

	require.NoError(t, store.CreateOrder(ctx))
	require.NoError(t, store.AddToCart(ctx, products[0]))
	require.NoError(t, store.AddToCart(ctx, products[0]))
	require.NoError(t, store.AddToCart(ctx, products[2]))

	state := store.State()
	require.Len(t, state.Cart, 2)
	assert.Equal(t, 3, state.Totals.ItemsCount)
	assert.Equal(t, "500", state.Totals.Total.String())

	require.NoError(t, store.RemoveFromCart(ctx, products[2].ID))
	assert.Len(t, store.Cart(), 1)

	msg, err := store.ConfirmPayment(ctx)
	require.NoError(t, err)
	assert.Equal(t, "¡Gracias Ana! Tu compra de $200 ha sido confirmada.", msg)
	assert.Equal(t, domain.StateOrderPaid, store.Order().State())
}

func TestStoreFallbackWhenBackendDown(t *testing.T) {
	srv := httptest.NewServer(httpx.NewRouter(httpx.NewHandler(memory.NewBackend(nil))))
	url := srv.URL
	srv.Close()

	store := app.NewStore(orderapi.NewClient(url+"/api", time.Second))

	err := store.FetchProducts(context.Background())

	var transportErr *domain.TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, domain.PlaceholderCatalog(), store.Products())
	assert.False(t, store.Loading())
}
