// Package app holds the cart store: the session's order, its cart and the
// operations that reconcile both with the remote order backend.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/core/ports"
	"github.com/jcmexdev/cart-sync/internal/coordinator"
	"github.com/jcmexdev/cart-sync/internal/coordinator/synclog"
)

const (
	opFetchProducts = "fetch_products"
	opCreateOrder   = "create_order"
	opUpdateOrder   = "update_order"
	opAddToCart     = "add_to_cart"
	opRemoveItem    = "remove_from_cart"
	opOrderDetails  = "get_order_details"
	opCheckout      = "checkout"
)

var tracer = otel.Tracer("github.com/jcmexdev/cart-sync/internal/cart/app")

// State is a point-in-time copy of everything the UI layer reads.
type State struct {
	Products []domain.Product
	Cart     domain.Cart
	Order    domain.Order
	UserName string
	Loading  bool
	Err      error
	Totals   domain.Totals
}

type Option func(*Store)

// WithCatalogCache makes FetchProducts fall back to the last good catalog
// before the placeholder one.
func WithCatalogCache(c ports.CatalogCache) Option {
	return func(s *Store) { s.catalog = c }
}

// WithSyncLog journals every operation transition.
func WithSyncLog(repo synclog.Repository) Option {
	return func(s *Store) { s.journal = repo }
}

func WithUserName(name string) Option {
	return func(s *Store) { s.userName = name }
}

// Store owns the cart and order of one session. Operations are serialized:
// a second call waits until the first one, including its resync, is done.
// Accessors never wait for an operation.
type Store struct {
	api     ports.OrderAPI
	catalog ports.CatalogCache
	journal synclog.Repository

	opMu sync.Mutex

	mu       sync.RWMutex
	products []domain.Product
	cart     domain.Cart
	order    domain.Order
	userName string
	loading  bool
	err      error
	// detached is set while the cart may be missing lines the backend holds.
	detached bool
}

func NewStore(api ports.OrderAPI, opts ...Option) *Store {
	s := &Store{
		api:   api,
		order: domain.EmptyOrder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Products: append([]domain.Product(nil), s.products...),
		Cart:     s.cart.Clone(),
		Order:    s.order,
		UserName: s.userName,
		Loading:  s.loading,
		Err:      s.err,
		Totals:   s.cart.Totals(),
	}
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *Store) Cart() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

func (s *Store) Order() domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the last error recorded by a remote-backed operation.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) CartTotal() domain.Money { return s.Cart().Total() }

func (s *Store) CartItemsCount() int { return s.Cart().ItemsCount() }

func (s *Store) IsCartEmpty() bool { return s.Cart().IsEmpty() }

func (s *Store) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
}

// beginLoading raises the loading flag and clears the last error. The
// returned func lowers the flag and must run on every exit path.
func (s *Store) beginLoading() func() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

// setCart replaces the cart with the backend's item list.
func (s *Store) setCart(items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = domain.Cart(items).Clone()
	s.detached = false
}

func (s *Store) isDetached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detached
}

// fail records err as the last error, logs it and marks the span.
func (s *Store) fail(ctx context.Context, span trace.Span, op string, err error) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.ErrorContext(ctx, "cart operation failed", "operation", op, "error", err)
	return err
}

// run executes steps as one journaled operation.
func (s *Store) run(ctx context.Context, operation string, orderID domain.ID, steps ...coordinator.Step) error {
	var oid string
	if !orderID.IsZero() {
		oid = orderID.String()
	}
	return coordinator.NewOrchestrator(uuid.NewString(), operation, oid, steps, s.journal).Start(ctx)
}
