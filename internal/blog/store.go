// Package blog mirrors the published blog posts with their pagination.
package blog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kevinotieno/shamba-storefront/internal/api"
)

type Post struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	CoverImage  string     `json:"coverImage,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

type Store struct {
	client *api.Client

	mu         sync.RWMutex
	posts      []Post
	pagination *Pagination
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Refresh(ctx context.Context, page, limit int) error {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}
	var data struct {
		Blogs      []Post      `json:"blogs"`
		Pagination *Pagination `json:"pagination"`
	}
	path := fmt.Sprintf("/blogs?published=true&page=%d&limit=%d", page, limit)
	if err := s.client.Get(ctx, path, &data); err != nil {
		log.Warn().Err(err).Msg("blog: refresh failed")
		return fmt.Errorf("blog: refresh: %w", err)
	}
	s.mu.Lock()
	s.posts = data.Blogs
	s.pagination = data.Pagination
	s.mu.Unlock()
	return nil
}

func (s *Store) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Post(nil), s.posts...)
}

func (s *Store) Pagination() *Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pagination == nil {
		return nil
	}
	p := *s.pagination
	return &p
}

func (s *Store) BySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post
	if err := s.client.Get(ctx, "/blogs/slug/"+slug, &post); err != nil {
		return nil, fmt.Errorf("blog: post %s: %w", slug, err)
	}
	return &post, nil
}
