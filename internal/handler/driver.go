package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kevinotieno/shamba-storefront/internal/driver"
	"github.com/kevinotieno/shamba-storefront/internal/order"
)

// DriverHandler serves the driver dashboard: assigned orders with the actions
// currently available on each, acceptance and progress actions, and the
// availability toggle.
type DriverHandler struct {
	svc *driver.Service
}

func NewDriverHandler(svc *driver.Service) *DriverHandler {
	return &DriverHandler{svc: svc}
}

type driverOrderView struct {
	Order   order.Order     `json:"order"`
	Actions []driver.Action `json:"actions"`
}

func (h *DriverHandler) Orders(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.LoadOrders(r.Context()); err != nil {
		respondFromError(w, err, "Failed to load assigned orders")
		return
	}
	orders := h.svc.Orders()
	views := make([]driverOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, driverOrderView{Order: o, Actions: driver.ActionsFor(o)})
	}
	respondData(w, http.StatusOK, map[string]any{
		"orders": views,
		"stats":  h.svc.Stats(),
		"status": h.svc.Status(),
	})
}

func (h *DriverHandler) Respond(w http.ResponseWriter, r *http.Request) {
	action, ok := h.action(w, r, driver.ActionAccept, driver.ActionDecline)
	if !ok {
		return
	}
	if err := h.svc.Respond(r.Context(), chi.URLParam(r, "orderID"), action); err != nil {
		respondFromError(w, err, "Failed to respond to order")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"orders": h.svc.Orders()})
}

func (h *DriverHandler) Advance(w http.ResponseWriter, r *http.Request) {
	action, ok := h.action(w, r, driver.ActionPickup, driver.ActionDeliver)
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.Advance(r.Context(), chi.URLParam(r, "orderID"), action, req.Note); err != nil {
		respondFromError(w, err, "Failed to update order")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"orders": h.svc.Orders()})
}

func (h *DriverHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	st, err := driver.ParseStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown driver status")
		return
	}
	if err := h.svc.SetStatus(r.Context(), st); err != nil {
		respondFromError(w, err, "Failed to update availability")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"status": h.svc.Status()})
}

// action parses the {action} URL segment and checks it is one of the allowed
// ones for the route.
func (h *DriverHandler) action(w http.ResponseWriter, r *http.Request, allowed ...driver.Action) (driver.Action, bool) {
	action, err := driver.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown action")
		return "", false
	}
	for _, a := range allowed {
		if action == a {
			return action, true
		}
	}
	respondError(w, http.StatusBadRequest, "Action not valid for this route")
	return "", false
}
