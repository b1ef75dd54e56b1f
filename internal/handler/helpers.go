package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/checkout"
	"github.com/kevinotieno/shamba-storefront/internal/driver"
	"github.com/kevinotieno/shamba-storefront/internal/order"
)

// envelope matches the response frame the rendered UI already speaks.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondData(w http.ResponseWriter, code int, data any) {
	respondJSON(w, code, envelope{Status: "success", Data: data})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, envelope{Status: "success", Message: message})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, envelope{Status: "error", Message: message})
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("handler: failed to encode response")
	}
}

// respondFromError maps domain failures onto the envelope: backend business
// failures keep their message and code, everything else is generic.
func respondFromError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, driver.ErrOrderNotAssigned):
		respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, driver.ErrActionUnavailable):
		respondError(w, http.StatusConflict, "Action not available for this order")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "Your cart is empty")
	case errors.Is(err, checkout.ErrWrongStep):
		respondError(w, http.StatusConflict, "Checkout is not at this step")
	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			code := apiErr.StatusCode
			if code < 400 {
				code = http.StatusBadGateway
			}
			respondError(w, code, apiErr.Message)
			return
		}
		log.Warn().Err(err).Msg("handler: request failed")
		respondError(w, http.StatusBadGateway, fallback)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
