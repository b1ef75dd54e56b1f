package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kevinotieno/shamba-storefront/internal/cart"
)

// CartHandler exposes the cart mirror and its mutations.
type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	// Failures degrade to an empty cart; the message travels along for the
	// toast without failing the request.
	res := h.svc.Refresh(r.Context())
	data := map[string]any{"cart": h.svc.Cart()}
	if !res.Success {
		data["message"] = res.Message
	}
	respondData(w, http.StatusOK, data)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	h.respondResult(w, h.svc.Add(r.Context(), req.ProductID, req.Quantity))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	h.respondResult(w, h.svc.UpdateQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Quantity))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.respondResult(w, h.svc.Remove(r.Context(), chi.URLParam(r, "itemID")))
}

func (h *CartHandler) respondResult(w http.ResponseWriter, res cart.Result) {
	if !res.Success {
		respondError(w, http.StatusBadRequest, res.Message)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"cart": h.svc.Cart()})
}
