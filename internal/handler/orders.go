package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kevinotieno/shamba-storefront/internal/order"
)

// OrderHandler serves the account order history and the public tracking
// lookup.
type OrderHandler struct {
	svc *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Refresh(r.Context()); err != nil {
		respondFromError(w, err, "Failed to load orders")
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"orders": h.svc.Orders(),
		"stats":  h.svc.Stats(),
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondFromError(w, err, "Failed to load order")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"order": o})
}

// Track resolves a tracking number without authentication. Cancelled orders
// carry no progress steps; the cancelled flag tells the caller to show a
// banner instead.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	o, err := h.svc.Track(r.Context(), number)
	if err != nil {
		respondFromError(w, err, "Order not found")
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"order":     o,
		"steps":     order.Steps(o),
		"cancelled": o.Status == order.StatusCancelled,
	})
}
