package driver

import (
	"context"
	"fmt"

	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/order"
)

type Repository interface {
	Orders(ctx context.Context) ([]order.Order, error)
	Respond(ctx context.Context, orderID string, action Action) error
	// Advance moves an accepted order forward (pickup or deliver); the note,
	// if any, lands on the new status-history entry.
	Advance(ctx context.Context, orderID string, action Action, note string) (*order.Order, error)
	SetStatus(ctx context.Context, s Status) error
}

type apiRepository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &apiRepository{client: client}
}

func (r *apiRepository) Orders(ctx context.Context) ([]order.Order, error) {
	var data struct {
		Orders []order.Order `json:"orders"`
	}
	if err := r.client.Get(ctx, "/driver/orders", &data); err != nil {
		return nil, fmt.Errorf("driver: list orders: %w", err)
	}
	return data.Orders, nil
}

func (r *apiRepository) Respond(ctx context.Context, orderID string, action Action) error {
	if err := r.client.Post(ctx, "/driver/orders/"+orderID+"/"+string(action), nil, nil); err != nil {
		return fmt.Errorf("driver: respond %s to order %s: %w", action, orderID, err)
	}
	return nil
}

func (r *apiRepository) Advance(ctx context.Context, orderID string, action Action, note string) (*order.Order, error) {
	var body any
	if note != "" {
		body = map[string]string{"note": note}
	}
	var data struct {
		Order *order.Order `json:"order"`
	}
	if err := r.client.Post(ctx, "/driver/orders/"+orderID+"/"+string(action), body, &data); err != nil {
		return nil, fmt.Errorf("driver: %s order %s: %w", action, orderID, err)
	}
	return data.Order, nil
}

func (r *apiRepository) SetStatus(ctx context.Context, s Status) error {
	if err := r.client.Patch(ctx, "/driver/status", map[string]string{"status": s.String()}, nil); err != nil {
		return fmt.Errorf("driver: set status %s: %w", s, err)
	}
	return nil
}
