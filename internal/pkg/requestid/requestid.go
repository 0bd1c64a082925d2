// Package requestid carries request and idempotency identifiers through
// contexts and across HTTP calls.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	HeaderXRequestId      = "X-Request-Id"
	HeaderXIdempotencyKey = "X-Idempotency-Key"
)

// contextKey prevents collisions with keys from other packages.
type contextKey string

const (
	ContextKeyRequestID      contextKey = "request_id"
	ContextKeyIdempotencyKey contextKey = "idempotency_key"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ContextKeyIdempotencyKey, key)
}

func IdempotencyKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(ContextKeyIdempotencyKey).(string)
	return key
}

// Transport stamps outgoing requests with the request id from their context
// (a fresh uuid when absent) and the idempotency key, if any.
type Transport struct {
	Base http.RoundTripper
}

func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	id := RequestIDFrom(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	out.Header.Set(HeaderXRequestId, id)

	if key := IdempotencyKeyFrom(ctx); key != "" {
		out.Header.Set(HeaderXIdempotencyKey, key)
	}

	return t.Base.RoundTrip(out)
}
