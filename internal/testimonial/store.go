// Package testimonial mirrors approved testimonials and tracks per-order
// review eligibility. Eligibility is an opaque server decision; this store
// only caches it.
package testimonial

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

type Testimonial struct {
	ID       string `json:"_id"`
	OrderID  string `json:"orderId,omitempty"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Author   string `json:"author,omitempty"`
	Image    string `json:"image,omitempty"`
	Approved bool   `json:"approved"`
}

// CreateInput is a new review for a delivered order. Image is optional.
type CreateInput struct {
	OrderID   string
	Rating    int
	Comment   string
	Image     io.Reader
	ImageName string
}

type Store struct {
	client *api.Client

	mu           sync.RWMutex
	testimonials []Testimonial
	canReview    map[string]bool
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client, canReview: make(map[string]bool)}
}

func (s *Store) Refresh(ctx context.Context) error {
	var testimonials []Testimonial
	if err := s.client.Get(ctx, "/testimonials?approved=true", &testimonials); err != nil {
		log.Warn().Err(err).Msg("testimonial: refresh failed")
		return fmt.Errorf("testimonial: refresh: %w", err)
	}
	s.mu.Lock()
	s.testimonials = testimonials
	s.mu.Unlock()
	return nil
}

func (s *Store) Testimonials() []Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Testimonial(nil), s.testimonials...)
}

// CanSubmit asks the backend whether the order may still be reviewed and
// caches the answer.
func (s *Store) CanSubmit(ctx context.Context, orderID string) (bool, error) {
	var data struct {
		CanSubmit bool `json:"canSubmit"`
	}
	if err := s.client.Get(ctx, "/testimonials/user/can-submit/"+orderID, &data); err != nil {
		return false, fmt.Errorf("testimonial: can-submit %s: %w", orderID, err)
	}
	s.mu.Lock()
	s.canReview[orderID] = data.CanSubmit
	s.mu.Unlock()
	return data.CanSubmit, nil
}

// CanReview returns the cached eligibility for an order.
func (s *Store) CanReview(orderID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canReview[orderID]
}

// Create submits a review. Success flips the cached eligibility to false
// immediately, without waiting for a re-fetch.
func (s *Store) Create(ctx context.Context, in CreateInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("testimonial: rating must be between 1 and 5, got %d", in.Rating)
	}
	if in.Comment == "" {
		return fmt.Errorf("testimonial: comment is required")
	}
	fields := map[string]string{
		"orderId": in.OrderID,
		"rating":  strconv.Itoa(in.Rating),
		"comment": in.Comment,
	}
	if err := s.client.PostMultipart(ctx, "/testimonials", fields, "image", in.ImageName, in.Image, nil); err != nil {
		return fmt.Errorf("testimonial: create: %w", err)
	}
	s.mu.Lock()
	s.canReview[in.OrderID] = false
	s.mu.Unlock()
	log.Info().Str("order_id", in.OrderID).Int("rating", in.Rating).Msg("testimonial: review submitted")
	return nil
}

// Delete removes the user's own testimonial.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/testimonials/user/"+id, nil); err != nil {
		return fmt.Errorf("testimonial: delete %s: %w", id, err)
	}
	return nil
}
