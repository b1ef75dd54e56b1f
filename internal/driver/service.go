// Package driver is the delivery dashboard: the driver's assigned orders,
// the accept/decline gate, and the pickup/deliver progression.
package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/order"
)

var (
	ErrActionUnavailable = errors.New("driver: action not available for this order")
	ErrOrderNotAssigned  = errors.New("driver: order not in the assigned list")
)

// ActionsFor is the dashboard gating rule: an order awaiting a driver
// response offers only accept/decline; once accepted, processing exposes
// pickup and shipped exposes deliver. Declined and terminal orders offer
// nothing.
func ActionsFor(o order.Order) []Action {
	switch o.DriverAccepted {
	case order.AcceptancePending:
		return []Action{ActionAccept, ActionDecline}
	case order.Declined:
		return nil
	case order.Accepted:
	}
	switch o.Status {
	case order.StatusProcessing:
		return []Action{ActionPickup}
	case order.StatusShipped:
		return []Action{ActionDeliver}
	case order.StatusPending, order.StatusDelivered, order.StatusCancelled:
		return nil
	}
	return nil
}

// Service mirrors the driver's assigned-order list and availability.
type Service struct {
	repo Repository

	mu     sync.RWMutex
	orders []order.Order
	status Status
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, status: StatusOffline}
}

func (s *Service) LoadOrders(ctx context.Context) error {
	orders, err := s.repo.Orders(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("driver: failed to load orders")
		return fmt.Errorf("driver: load orders: %w", err)
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

func (s *Service) Orders() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]order.Order(nil), s.orders...)
}

// Respond accepts or declines an assigned order, then reloads the list so the
// mirror reflects whatever the backend decided.
func (s *Service) Respond(ctx context.Context, orderID string, action Action) error {
	if action != ActionAccept && action != ActionDecline {
		return ErrActionUnavailable
	}
	o, found := s.find(orderID)
	if !found {
		return ErrOrderNotAssigned
	}
	if !slices.Contains(ActionsFor(o), action) {
		return ErrActionUnavailable
	}
	if err := s.repo.Respond(ctx, orderID, action); err != nil {
		return err
	}
	log.Info().Str("order_id", orderID).Str("action", string(action)).Msg("driver: responded to assignment")
	return s.LoadOrders(ctx)
}

// Advance confirms pickup or delivery with an optional note. The local gate
// mirrors the backend's rules so an impossible request is rejected before any
// round-trip.
func (s *Service) Advance(ctx context.Context, orderID string, action Action, note string) error {
	if action != ActionPickup && action != ActionDeliver {
		return ErrActionUnavailable
	}
	o, found := s.find(orderID)
	if !found {
		return ErrOrderNotAssigned
	}
	if !slices.Contains(ActionsFor(o), action) {
		return ErrActionUnavailable
	}
	updated, err := s.repo.Advance(ctx, orderID, action, note)
	if err != nil {
		return err
	}
	if updated != nil {
		s.mu.Lock()
		for i := range s.orders {
			if s.orders[i].ID == orderID {
				s.orders[i] = *updated
				break
			}
		}
		s.mu.Unlock()
	}
	log.Info().Str("order_id", orderID).Str("action", string(action)).Msg("driver: order advanced")
	return nil
}

// SetStatus toggles the driver's availability. Accepting an order does not
// touch this; the toggle is the only writer.
func (s *Service) SetStatus(ctx context.Context, st Status) error {
	if err := s.repo.SetStatus(ctx, st); err != nil {
		return err
	}
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	log.Info().Str("status", st.String()).Msg("driver: availability updated")
	return nil
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	for _, o := range s.orders {
		switch o.Status {
		case order.StatusProcessing:
			st.Assigned++
		case order.StatusShipped:
			st.Assigned++
			st.InTransit++
		case order.StatusDelivered:
			st.Delivered++
		case order.StatusPending, order.StatusCancelled:
		}
	}
	return st
}

func (s *Service) find(orderID string) (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return order.Order{}, false
}
