package images

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/infrastructure/unsplash"
)

// Service finds stock photos for the inspiration board. Results pass through
// from the provider untouched, the client picks a URL and saves it as an
// inspiration afterwards.
type Service interface {
	Search(ctx context.Context, query string, page int) (*unsplash.SearchResult, error)
}

type settingsStore interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
}

type searcher interface {
	Search(ctx context.Context, accessKey, query string, page int) (*unsplash.SearchResult, error)
}

type service struct {
	settings settingsStore
	client   searcher
}

func NewService(settings settingsStore, client searcher) Service {
	return &service{settings: settings, client: client}
}

func (s *service) Search(ctx context.Context, query string, page int) (*unsplash.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", domain.ErrBadRequest)
	}
	if page < 1 {
		page = 1
	}

	// The access key lives in the settings document so admins can rotate it
	// without a deploy. No key means the feature is off, not broken.
	cfg, err := s.settings.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("image search credential not configured: %w", domain.ErrUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if cfg.UnsplashAccessKey == "" {
		return nil, fmt.Errorf("image search credential not configured: %w", domain.ErrUnavailable)
	}

	return s.client.Search(ctx, cfg.UnsplashAccessKey, query, page)
}
