package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/core/ports"
	"github.com/jcmexdev/cart-sync/internal/pkg/requestid"
)

// Operation names used for call recording and failure injection.
const (
	OpListProducts    = "list_products"
	OpCreateOrder     = "create_order"
	OpUpdateOrder     = "update_order"
	OpListOrderItems  = "list_order_items"
	OpCreateOrderItem = "create_order_item"
	OpUpdateOrderItem = "update_order_item"
	OpDeleteOrderItem = "delete_order_item"
	OpCheckout        = "checkout"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Ensure Backend implements the port at compile time.
var _ ports.OrderAPI = (*Backend)(nil)

// Call is one recorded invocation.
type Call struct {
	Op string
	ID domain.ID
}

// Backend is an in-memory order backend honoring the remote API contract.
// It is meant for tests and local development only.
type Backend struct {
	mu sync.Mutex

	products    map[domain.ID]domain.Product
	orders      map[domain.ID]*domain.Order
	items       map[domain.ID]*domain.CartItem
	idempotency map[string]domain.ID

	nextOrderID domain.ID
	nextItemID  domain.ID

	calls    []Call
	failures map[string]error
}

// NewBackend returns a backend whose catalog holds the given products.
func NewBackend(products []domain.Product) *Backend {
	b := &Backend{
		products:    make(map[domain.ID]domain.Product, len(products)),
		orders:      make(map[domain.ID]*domain.Order),
		items:       make(map[domain.ID]*domain.CartItem),
		idempotency: make(map[string]domain.ID),
		failures:    make(map[string]error),
	}
	for _, p := range products {
		b.products[p.ID] = p
	}
	return b
}

// FailNext makes the next call of op return err instead of running.
func (b *Backend) FailNext(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = err
}

// Calls returns a copy of every recorded invocation, oldest first.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

func (b *Backend) CallCount(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Order returns a copy of a stored order.
func (b *Backend) Order(id domain.ID) (domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[id]
	if !ok {
		return domain.Order{}, false
	}
	return *o, true
}

// begin records the call and consumes an injected failure. Callers hold b.mu.
func (b *Backend) begin(op string, id domain.ID) error {
	b.calls = append(b.calls, Call{Op: op, ID: id})
	if err, ok := b.failures[op]; ok {
		delete(b.failures, op)
		return err
	}
	return nil
}

func (b *Backend) ListProducts(ctx context.Context) ([]domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpListProducts, 0); err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) CreateOrder(ctx context.Context, username string) (domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpCreateOrder, 0); err != nil {
		return domain.Order{}, err
	}

	b.nextOrderID++
	o := &domain.Order{ID: b.nextOrderID, Username: username}
	b.orders[o.ID] = o
	return *o, nil
}

func (b *Backend) UpdateOrder(ctx context.Context, id domain.ID, username string) (domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpUpdateOrder, id); err != nil {
		return domain.Order{}, err
	}

	o, ok := b.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	o.Username = username
	return *o, nil
}

func (b *Backend) ListOrderItems(ctx context.Context, orderID domain.ID) ([]domain.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpListOrderItems, orderID); err != nil {
		return nil, err
	}

	if _, ok := b.orders[orderID]; !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}

	out := []domain.CartItem{}
	for _, it := range b.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateOrderItem snapshots the product name and price. A repeated
// idempotency key returns the item created by the first request.
func (b *Backend) CreateOrderItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpCreateOrderItem, 0); err != nil {
		return domain.CartItem{}, err
	}

	key := requestid.IdempotencyKeyFrom(ctx)
	if id, ok := b.idempotency[key]; ok && key != "" {
		if existing, ok := b.items[id]; ok {
			return *existing, nil
		}
	}

	o, ok := b.orders[item.OrderID]
	if !ok {
		return domain.CartItem{}, fmt.Errorf("order %s: %w", item.OrderID, ErrNotFound)
	}
	if o.Paid {
		return domain.CartItem{}, domain.ErrOrderPaid
	}
	p, ok := b.products[item.ProductID]
	if !ok {
		return domain.CartItem{}, fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
	}
	if item.Quantity <= 0 {
		return domain.CartItem{}, ErrInvalidQuantity
	}

	b.nextItemID++
	created := &domain.CartItem{
		ID:          b.nextItemID,
		OrderID:     o.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Quantity:    item.Quantity,
	}
	b.items[created.ID] = created
	if key != "" {
		b.idempotency[key] = created.ID
	}
	return *created, nil
}

// UpdateOrderItem only changes the quantity; the price snapshot is kept.
func (b *Backend) UpdateOrderItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpUpdateOrderItem, item.ID); err != nil {
		return domain.CartItem{}, err
	}

	existing, ok := b.items[item.ID]
	if !ok {
		return domain.CartItem{}, fmt.Errorf("order item %s: %w", item.ID, ErrNotFound)
	}
	if o := b.orders[existing.OrderID]; o != nil && o.Paid {
		return domain.CartItem{}, domain.ErrOrderPaid
	}
	if item.Quantity <= 0 {
		return domain.CartItem{}, ErrInvalidQuantity
	}
	existing.Quantity = item.Quantity
	return *existing, nil
}

func (b *Backend) DeleteOrderItem(ctx context.Context, id domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpDeleteOrderItem, id); err != nil {
		return err
	}

	existing, ok := b.items[id]
	if !ok {
		return fmt.Errorf("order item %s: %w", id, ErrNotFound)
	}
	if o := b.orders[existing.OrderID]; o != nil && o.Paid {
		return domain.ErrOrderPaid
	}
	delete(b.items, id)
	return nil
}

func (b *Backend) Checkout(ctx context.Context, orderID domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin(OpCheckout, orderID); err != nil {
		return err
	}

	o, ok := b.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Paid {
		return domain.ErrOrderPaid
	}
	o.Paid = true
	return nil
}
