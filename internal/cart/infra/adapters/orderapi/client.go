// Package orderapi is the HTTP adapter of the remote order API.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/core/ports"
	"github.com/jcmexdev/cart-sync/internal/pkg/requestid"
)

// Ensure Client implements the port at compile time.
var _ ports.OrderAPI = (*Client)(nil)

// Client talks JSON over HTTP to the order backend rooted at baseURL
// (e.g. http://localhost:8000/api).
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client whose transport is traced and stamps request ids.
// A zero timeout leaves calls unbounded except by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: requestid.NewTransport(otelhttp.NewTransport(http.DefaultTransport)),
	})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, "list products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateOrder(ctx context.Context, username string) (domain.Order, error) {
	var res orderResponse
	if err := c.do(ctx, "create order", http.MethodPost, "/orden", orderRequest{Username: username}, &res); err != nil {
		return domain.Order{}, err
	}
	return res.Data, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id domain.ID, username string) (domain.Order, error) {
	var res orderResponse
	path := fmt.Sprintf("/orden/%s", id)
	if err := c.do(ctx, "update order", http.MethodPut, path, orderRequest{Username: username}, &res); err != nil {
		return domain.Order{}, err
	}
	return res.Data, nil
}

func (c *Client) ListOrderItems(ctx context.Context, orderID domain.ID) ([]domain.CartItem, error) {
	var items []domain.CartItem
	path := fmt.Sprintf("/orden/%s/items", orderID)
	if err := c.do(ctx, "list order items", http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateOrderItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	var res orderItemResponse
	if err := c.do(ctx, "create order item", http.MethodPost, "/orden/item", item, &res); err != nil {
		return domain.CartItem{}, err
	}
	return res.Data, nil
}

func (c *Client) UpdateOrderItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	var res orderItemResponse
	path := fmt.Sprintf("/orden/item/%s", item.ID)
	if err := c.do(ctx, "update order item", http.MethodPut, path, item, &res); err != nil {
		return domain.CartItem{}, err
	}
	return res.Data, nil
}

func (c *Client) DeleteOrderItem(ctx context.Context, id domain.ID) error {
	path := fmt.Sprintf("/orden/item/%s", id)
	return c.do(ctx, "delete order item", http.MethodDelete, path, nil, nil)
}

func (c *Client) Checkout(ctx context.Context, orderID domain.ID) error {
	path := fmt.Sprintf("/orden/%s/checkout", orderID)
	return c.do(ctx, "checkout", http.MethodPost, path, nil, nil)
}

// do sends body as JSON and decodes a 2xx response into out when out is
// non-nil and the response has a body. Any other status is an
// *domain.HTTPStatusError; a failed round trip is a *domain.TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.HTTPStatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
