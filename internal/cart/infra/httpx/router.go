package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/cart-sync/internal/cart/infra/httpx/middlewares"
)

// NewRouter mounts the order API contract under /api. Incoming traceparent
// headers are honoured, so client and stub spans share one trace.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)

		r.Post("/orden", handler.CreateOrder)
		r.Put("/orden/{id}", handler.UpdateOrder)
		r.Get("/orden/{id}/items", handler.ListOrderItems)
		r.Post("/orden/{id}/checkout", handler.Checkout)

		r.Post("/orden/item", handler.CreateOrderItem)
		r.Put("/orden/item/{id}", handler.UpdateOrderItem)
		r.Delete("/orden/item/{id}", handler.DeleteOrderItem)
	})
	return otelhttp.NewHandler(r, "orders-api")
}
