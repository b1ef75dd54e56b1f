package checkout

import (
	"context"
	"fmt"

	"github.com/kevinotieno/shamba-storefront/internal/api"
	"github.com/kevinotieno/shamba-storefront/internal/geo"
)

// Settings is the backend's delivery configuration.
type Settings struct {
	PickupEnabled         bool    `json:"pickupEnabled"`
	FreeDeliveryThreshold float64 `json:"freeDeliveryThreshold,omitempty"`
	PickupAddress         string  `json:"pickupAddress,omitempty"`
	PickupInstructions    string  `json:"pickupInstructions,omitempty"`
}

// Quote is the fee-calculation result for a delivery location.
type Quote struct {
	DeliveryFee    float64 `json:"deliveryFee"`
	Distance       float64 `json:"distance"`
	IsFreeDelivery bool    `json:"isFreeDelivery"`
}

type Repository interface {
	Settings(ctx context.Context) (*Settings, error)
	// QuoteFee asks the backend for the delivery fee at the given location.
	// An out-of-service-area location comes back as an *api.Error carrying the
	// message to show.
	QuoteFee(ctx context.Context, loc geo.Coordinates, orderAmount float64) (*Quote, error)
}

type apiRepository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &apiRepository{client: client}
}

func (r *apiRepository) Settings(ctx context.Context) (*Settings, error) {
	var data struct {
		Settings *Settings `json:"settings"`
	}
	if err := r.client.Get(ctx, "/delivery-settings", &data); err != nil {
		return nil, fmt.Errorf("checkout: fetch delivery settings: %w", err)
	}
	if data.Settings == nil {
		return &Settings{}, nil
	}
	return data.Settings, nil
}

func (r *apiRepository) QuoteFee(ctx context.Context, loc geo.Coordinates, orderAmount float64) (*Quote, error) {
	body := map[string]any{
		"latitude":    loc.Latitude,
		"longitude":   loc.Longitude,
		"orderAmount": orderAmount,
	}
	var quote Quote
	if err := r.client.Post(ctx, "/delivery-settings/calculate", body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
