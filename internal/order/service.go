package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Service mirrors the customer's order history. The mirror is rebuilt by
// Refresh; nothing is persisted across process restarts.
type Service struct {
	repo Repository

	mu     sync.RWMutex
	orders []Order
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Refresh(ctx context.Context) error {
	orders, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("order: refresh failed")
		return fmt.Errorf("order: refresh: %w", err)
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	log.Info().Int("count", len(orders)).Msg("order: history refreshed")
	return nil
}

func (s *Service) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Order(nil), s.orders...)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Track performs a fresh public lookup; there is no polling, a new call is
// the only refresh path.
func (s *Service) Track(ctx context.Context, number string) (*Order, error) {
	return s.repo.TrackByNumber(ctx, number)
}

// Stats summarizes the mirror for the account overview.
type Stats struct {
	Total     int     `json:"total"`
	Delivered int     `json:"delivered"`
	Open      int     `json:"open"`
	Spent     float64 `json:"spent"`
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	st.Total = len(s.orders)
	for _, o := range s.orders {
		switch o.Status {
		case StatusDelivered:
			st.Delivered++
		case StatusPending, StatusProcessing, StatusShipped:
			st.Open++
		case StatusCancelled:
		}
		if o.PaymentStatus == PaymentPaid {
			st.Spent += o.TotalAmount
		}
	}
	return st
}
