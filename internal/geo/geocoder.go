// Package geo holds coordinates and the best-effort reverse geocoder used to
// prefill delivery address fields. Nothing here may ever block a checkout.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is the subset of a reverse-geocode result the checkout form uses.
type Address struct {
	Street     string
	City       string
	PostalCode string
}

type Geocoder struct {
	baseURL string
	http    *http.Client
}

func NewGeocoder(baseURL string) *Geocoder {
	return &Geocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City     string `json:"city"`
		Town     string `json:"town"`
		County   string `json:"county"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// Reverse looks up a human-readable address for the coordinates. The street is
// the first three comma segments of the display name; city falls back
// city→town→county.
func (g *Geocoder) Reverse(ctx context.Context, c Coordinates) (*Address, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", c.Latitude))
	q.Set("lon", fmt.Sprintf("%f", c.Longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geo: build request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo: reverse geocode: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo: reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("geo: decode reverse geocode response: %w", err)
	}

	city := rr.Address.City
	if city == "" {
		city = rr.Address.Town
	}
	if city == "" {
		city = rr.Address.County
	}

	return &Address{
		Street:     shortDisplayName(rr.DisplayName),
		City:       city,
		PostalCode: rr.Address.Postcode,
	}, nil
}

func shortDisplayName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, ",")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ", ")
}
