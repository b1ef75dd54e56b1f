package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	// TrackByNumber is the public lookup keyed by tracking number; it needs no
	// authentication.
	TrackByNumber(ctx context.Context, number string) (*Order, error)
	Create(ctx context.Context, req CreateRequest) (*Created, error)
}

type apiRepository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &apiRepository{client: client}
}

func (r *apiRepository) List(ctx context.Context) ([]Order, error) {
	var data struct {
		Orders []Order `json:"orders"`
	}
	if err := r.client.Get(ctx, "/orders", &data); err != nil {
		return nil, fmt.Errorf("order: list: %w", err)
	}
	return data.Orders, nil
}

func (r *apiRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	var data struct {
		Order *Order `json:"order"`
	}
	if err := r.client.Get(ctx, "/orders/"+id, &data); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order: get %s: %w", id, err)
	}
	return data.Order, nil
}

func (r *apiRepository) TrackByNumber(ctx context.Context, number string) (*Order, error) {
	var data struct {
		Order *Order `json:"order"`
	}
	if err := r.client.Get(ctx, "/orders/track/"+number, &data); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order: track %s: %w", number, err)
	}
	return data.Order, nil
}

func (r *apiRepository) Create(ctx context.Context, req CreateRequest) (*Created, error) {
	var data Created
	if err := r.client.Post(ctx, "/orders", req, &data); err != nil {
		return nil, fmt.Errorf("order: create: %w", err)
	}
	return &data, nil
}
