package payment

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/order"
)

type VerifyState string

const (
	StateVerifying VerifyState = "verifying"
	StateSuccess   VerifyState = "success"
	StateError     VerifyState = "error"
)

// VerifyRepository confirms a transaction by reference against the backend.
type VerifyRepository interface {
	Verify(ctx context.Context, reference string) (*order.Order, error)
}

type apiVerifyRepository struct {
	client *api.Client
}

func NewVerifyRepository(client *api.Client) VerifyRepository {
	return &apiVerifyRepository{client: client}
}

func (r *apiVerifyRepository) Verify(ctx context.Context, reference string) (*order.Order, error) {
	var data struct {
		Order *order.Order `json:"order"`
	}
	path := "/payment/verify?reference=" + url.QueryEscape(reference)
	if err := r.client.Post(ctx, path, nil, &data); err != nil {
		return nil, fmt.Errorf("payment: verify %s: %w", reference, err)
	}
	return data.Order, nil
}

// Result is the verification view state.
type Result struct {
	State   VerifyState  `json:"state"`
	Order   *order.Order `json:"order,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Verifier calls the verify endpoint exactly once per mount. There is no
// automatic retry; a failed verification sends the user back to checkout.
type Verifier struct {
	repo      VerifyRepository
	reference string

	once   sync.Once
	mu     sync.Mutex
	result Result
}

func NewVerifier(repo VerifyRepository, reference string) *Verifier {
	return &Verifier{
		repo:      repo,
		reference: reference,
		result:    Result{State: StateVerifying},
	}
}

// Verify runs the backend call on first invocation and returns the cached
// outcome on every later one.
func (v *Verifier) Verify(ctx context.Context) Result {
	v.once.Do(func() {
		if v.reference == "" {
			v.set(Result{State: StateError, Message: "No payment reference found"})
			return
		}
		o, err := v.repo.Verify(ctx, v.reference)
		if err != nil {
			v.set(Result{State: StateError, Message: api.UserMessage(err, "Payment verification failed")})
			return
		}
		v.set(Result{State: StateSuccess, Order: o})
	})
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

func (v *Verifier) set(r Result) {
	v.mu.Lock()
	v.result = r
	v.mu.Unlock()
}
