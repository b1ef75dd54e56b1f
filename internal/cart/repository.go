package cart

import (
	"context"
	"fmt"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

// Repository is the remote cart binding. Every mutation returns the full cart
// snapshot the backend holds afterwards; callers replace their mirror with it
// wholesale (last-write-wins reconciliation).
type Repository interface {
	Fetch(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, itemID string) (*Cart, error)
}

type apiRepository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &apiRepository{client: client}
}

type cartData struct {
	Cart *Cart `json:"cart"`
}

func (r *apiRepository) Fetch(ctx context.Context) (*Cart, error) {
	var data cartData
	if err := r.client.Get(ctx, "/cart", &data); err != nil {
		return nil, fmt.Errorf("cart: fetch: %w", err)
	}
	return unwrap(data), nil
}

func (r *apiRepository) AddItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	var data cartData
	if err := r.client.Post(ctx, "/cart", body, &data); err != nil {
		return nil, fmt.Errorf("cart: add item: %w", err)
	}
	return unwrap(data), nil
}

func (r *apiRepository) UpdateItem(ctx context.Context, itemID string, quantity int) (*Cart, error) {
	body := map[string]any{"quantity": quantity}
	var data cartData
	if err := r.client.Patch(ctx, "/cart/"+itemID, body, &data); err != nil {
		return nil, fmt.Errorf("cart: update item: %w", err)
	}
	return unwrap(data), nil
}

func (r *apiRepository) RemoveItem(ctx context.Context, itemID string) (*Cart, error) {
	var data cartData
	if err := r.client.Delete(ctx, "/cart/"+itemID, &data); err != nil {
		return nil, fmt.Errorf("cart: remove item: %w", err)
	}
	return unwrap(data), nil
}

func unwrap(data cartData) *Cart {
	if data.Cart == nil {
		return &Cart{}
	}
	return data.Cart
}
