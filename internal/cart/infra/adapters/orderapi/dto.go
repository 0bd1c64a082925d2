package orderapi

import "github.com/jcmexdev/cart-sync/internal/cart/core/domain"

type orderRequest struct {
	Username string `json:"username"`
}

// envelope is the {"data": ...} wrapper used by create/update responses.
type envelope[T any] struct {
	Data T `json:"data"`
}

type orderResponse = envelope[domain.Order]

type orderItemResponse = envelope[domain.CartItem]
