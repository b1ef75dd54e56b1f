// Package catalog mirrors the active product categories.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type Store struct {
	client *api.Client

	mu         sync.RWMutex
	categories []Category
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Refresh(ctx context.Context) error {
	var categories []Category
	if err := s.client.Get(ctx, "/categories?active=true", &categories); err != nil {
		log.Warn().Err(err).Msg("catalog: refresh failed")
		return fmt.Errorf("catalog: refresh: %w", err)
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.categories...)
}

func (s *Store) BySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := s.client.Get(ctx, "/categories/slug/"+slug, &category); err != nil {
		return nil, fmt.Errorf("catalog: category %s: %w", slug, err)
	}
	return &category, nil
}
