// Package advert mirrors marketing placements (hero, promo banners) and their
// creative items. Purely fetch-and-render; the only lifecycle is the cache.
package advert

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

// Item is one creative inside a placement.
type Item struct {
	Image      string `json:"image"`
	Title      string `json:"title,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
}

type Advert struct {
	ID        string `json:"_id"`
	Placement string `json:"placement"`
	Items     []Item `json:"items"`
}

type Store struct {
	client *api.Client

	mu          sync.RWMutex
	adverts     []Advert
	byPlacement map[string]Advert
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client, byPlacement: make(map[string]Advert)}
}

// Refresh fetches all active adverts and rebuilds the placement index.
func (s *Store) Refresh(ctx context.Context) error {
	var data struct {
		Adverts []Advert `json:"adverts"`
	}
	if err := s.client.Get(ctx, "/adverts?active=true", &data); err != nil {
		log.Warn().Err(err).Msg("advert: refresh failed")
		return fmt.Errorf("advert: refresh: %w", err)
	}
	byPlacement := make(map[string]Advert, len(data.Adverts))
	for _, a := range data.Adverts {
		byPlacement[a.Placement] = a
	}
	s.mu.Lock()
	s.adverts = data.Adverts
	s.byPlacement = byPlacement
	s.mu.Unlock()
	return nil
}

func (s *Store) Adverts() []Advert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Advert(nil), s.adverts...)
}

// ByPlacement serves from the cache first and falls back to a single-placement
// fetch, caching the result.
func (s *Store) ByPlacement(ctx context.Context, placement string) (*Advert, error) {
	s.mu.RLock()
	cached, found := s.byPlacement[placement]
	s.mu.RUnlock()
	if found {
		return &cached, nil
	}

	var data struct {
		Advert *Advert `json:"advert"`
	}
	if err := s.client.Get(ctx, "/adverts/placement/"+placement, &data); err != nil {
		return nil, fmt.Errorf("advert: placement %s: %w", placement, err)
	}
	if data.Advert == nil {
		return nil, fmt.Errorf("advert: placement %s: empty response", placement)
	}
	s.mu.Lock()
	s.byPlacement[placement] = *data.Advert
	s.mu.Unlock()
	return data.Advert, nil
}

// PlacementItems returns the cached creatives for a placement, empty when the
// placement has not been fetched.
func (s *Store) PlacementItems(placement string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, found := s.byPlacement[placement]; found {
		return append([]Item(nil), a.Items...)
	}
	return nil
}

func (s *Store) ClearCache() {
	s.mu.Lock()
	s.adverts = nil
	s.byPlacement = make(map[string]Advert)
	s.mu.Unlock()
}
