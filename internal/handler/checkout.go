package handler

import (
	"net/http"

	"github.com/kevinotieno/shamba-storefront/internal/checkout"
	"github.com/kevinotieno/shamba-storefront/internal/geo"
	"github.com/kevinotieno/shamba-storefront/internal/order"
	"github.com/kevinotieno/shamba-storefront/internal/payment"
)

// CheckoutHandler drives the two-step checkout flow and the payment
// verification view.
type CheckoutHandler struct {
	flow   *checkout.Flow
	verify payment.VerifyRepository
}

func NewCheckoutHandler(flow *checkout.Flow, verify payment.VerifyRepository) *CheckoutHandler {
	return &CheckoutHandler{flow: flow, verify: verify}
}

func (h *CheckoutHandler) Init(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.Init(r.Context()); err != nil {
		respondFromError(w, err, "Failed to start checkout")
		return
	}
	h.state(w)
}

func (h *CheckoutHandler) SetDeliveryMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := order.ParseDeliveryMethod(req.Method)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown delivery method")
		return
	}
	h.flow.SetDeliveryMethod(m)
	h.state(w)
}

func (h *CheckoutHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := order.ParsePaymentMethod(req.Method)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}
	h.flow.SetPaymentMethod(m)
	h.state(w)
}

func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var addr order.ShippingAddress
	if !decodeBody(w, r, &addr) {
		return
	}
	h.flow.SetAddress(addr)
	h.state(w)
}

func (h *CheckoutHandler) UseLocation(w http.ResponseWriter, r *http.Request) {
	var loc geo.Coordinates
	if !decodeBody(w, r, &loc) {
		return
	}
	h.flow.UseLocation(r.Context(), loc)
	h.state(w)
}

func (h *CheckoutHandler) Continue(w http.ResponseWriter, r *http.Request) {
	switch err := h.flow.Continue(); err {
	case nil:
		h.state(w)
	case checkout.ErrOutsideServiceArea:
		respondError(w, http.StatusUnprocessableEntity, "Your location is outside our delivery area")
	case checkout.ErrIncompleteAddress:
		respondError(w, http.StatusUnprocessableEntity, "Please fill in all required delivery details")
	default:
		respondFromError(w, err, "Cannot continue to payment")
	}
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.flow.Back()
	h.state(w)
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	handoff, err := h.flow.Submit(r.Context())
	if err != nil {
		respondFromError(w, err, "An error occurred. Please try again.")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"handoff": handoff})
}

// Verify confirms a transaction by reference. Each request is one mount: the
// verifier runs the backend call exactly once and reports a terminal state.
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	v := payment.NewVerifier(h.verify, reference)
	res := v.Verify(r.Context())
	if res.State == payment.StateError {
		respondError(w, http.StatusUnprocessableEntity, res.Message)
		return
	}
	respondData(w, http.StatusOK, res)
}

func (h *CheckoutHandler) state(w http.ResponseWriter) {
	respondData(w, http.StatusOK, map[string]any{
		"step":           h.flow.Step(),
		"deliveryMethod": h.flow.DeliveryMethod(),
		"address":        h.flow.Address(),
		"settings":       h.flow.Settings(),
		"locationError":  h.flow.LocationError(),
		"canContinue":    h.flow.CanContinue(),
		"summary":        h.flow.Summary(),
	})
}
