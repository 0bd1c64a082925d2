package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/cart-sync/internal/cart/core/domain"
	"github.com/jcmexdev/cart-sync/internal/cart/core/ports"
	"github.com/jcmexdev/cart-sync/internal/cart/infra/adapters/memory"
	"github.com/jcmexdev/cart-sync/internal/pkg/requestid"
)

// Handler exposes an OrderAPI implementation over the remote API contract.
type Handler struct {
	backend ports.OrderAPI
}

func NewHandler(backend ports.OrderAPI) *Handler {
	return &Handler{backend: backend}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.backend.ListProducts(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.backend.CreateOrder(r.Context(), req.Username)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "order created",
		"request_id", requestid.RequestIDFrom(r.Context()),
		"order_id", order.ID.String(),
	)
	writeJSON(w, http.StatusCreated, DataResponse{Data: order})
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.backend.UpdateOrder(r.Context(), id, req.Username)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: order})
}

func (h *Handler) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	items, err := h.backend.ListOrderItems(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateOrderItem(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.backend.CreateOrderItem(r.Context(), item)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataResponse{Data: created})
}

func (h *Handler) UpdateOrderItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var item domain.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	item.ID = id

	updated, err := h.backend.UpdateOrderItem(r.Context(), item)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: updated})
}

func (h *Handler) DeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.backend.DeleteOrderItem(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.backend.Checkout(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", raw)
		return 0, false
	}
	return domain.ID(n), true
}

// writeBackendError maps backend errors to status codes. Injected
// *domain.HTTPStatusError values keep their status.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *domain.HTTPStatusError
	switch {
	case errors.As(err, &statusErr):
		writeError(w, statusErr.StatusCode, "backend_error", err.Error())
	case errors.Is(err, memory.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, memory.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, domain.ErrOrderPaid):
		writeError(w, http.StatusConflict, "order_paid", err.Error())
	default:
		slog.ErrorContext(r.Context(), "backend failure", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
