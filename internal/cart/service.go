package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

// Result is what cart mutations hand back to the UI layer: either success with
// the mirror already updated, or a displayable message with the mirror
// untouched.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok() Result             { return Result{Success: true} }
func fail(msg string) Result { return Result{Success: false, Message: msg} }

// Service mirrors the authenticated user's cart. Mutations are single-flight
// per cart line: a second update for the same item while one is in flight
// joins the first instead of racing it.
type Service struct {
	repo  Repository
	group singleflight.Group

	mu   sync.RWMutex
	cart Cart
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Refresh fetches the cart. Failures degrade to an empty-cart mirror; the
// returned Result carries the message for a toast, nothing is thrown upward.
func (s *Service) Refresh(ctx context.Context) Result {
	c, err := s.repo.Fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cart: refresh failed, keeping empty cart")
		s.replace(Cart{})
		return fail(api.UserMessage(err, "Failed to load cart"))
	}
	s.replace(*c)
	return ok()
}

func (s *Service) Add(ctx context.Context, productID string, quantity int) Result {
	if quantity < 1 {
		return fail("Quantity must be at least 1")
	}
	return s.mutate(ctx, "add:"+productID, func(ctx context.Context) (*Cart, error) {
		return s.repo.AddItem(ctx, productID, quantity)
	})
}

// UpdateQuantity rejects quantities below 1 without issuing a request;
// removing the line is the correct operation for zero.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) Result {
	if quantity < 1 {
		return fail("Quantity must be at least 1")
	}
	return s.mutate(ctx, "item:"+itemID, func(ctx context.Context) (*Cart, error) {
		return s.repo.UpdateItem(ctx, itemID, quantity)
	})
}

func (s *Service) Remove(ctx context.Context, itemID string) Result {
	return s.mutate(ctx, "item:"+itemID, func(ctx context.Context) (*Cart, error) {
		return s.repo.RemoveItem(ctx, itemID)
	})
}

func (s *Service) mutate(ctx context.Context, key string, fn func(ctx context.Context) (*Cart, error)) Result {
	v, err, _ := s.group.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cart: mutation failed")
		return fail(api.UserMessage(err, "Failed to update cart"))
	}
	s.replace(*v.(*Cart))
	return ok()
}

// Cart returns a copy of the current mirror.
func (s *Service) Cart() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.cart
	c.Items = append([]Item(nil), s.cart.Items...)
	return c
}

// Subtotal is the server-reported total, returned verbatim.
func (s *Service) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalAmount
}

func (s *Service) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cart.Items)
}

func (s *Service) replace(c Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = c
}
