package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/cart-sync/internal/pkg/requestid"
)

// AttachRequestMetadata copies the request id (set by middleware.RequestID)
// and the X-Idempotency-Key header into the request context.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestid.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		if key := r.Header.Get(requestid.HeaderXIdempotencyKey); key != "" {
			ctx = requestid.WithIdempotencyKey(ctx, key)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
