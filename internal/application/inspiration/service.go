package inspiration

import (
	"context"
	"fmt"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, weddingID string) ([]domain.Inspiration, error)
	Create(ctx context.Context, weddingID string, req domain.CreateInspirationRequest) (*domain.Inspiration, error)
	Delete(ctx context.Context, weddingID, inspirationID string) error
}

type inspirationStore interface {
	Put(ctx context.Context, insp *domain.Inspiration) error
	Get(ctx context.Context, inspirationID string) (*domain.Inspiration, error)
	ListByWedding(ctx context.Context, weddingID string) ([]domain.Inspiration, error)
	Delete(ctx context.Context, inspirationID string) error
}

type service struct {
	repo inspirationStore
}

func NewService(repo inspirationStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, weddingID string) ([]domain.Inspiration, error) {
	return s.repo.ListByWedding(ctx, weddingID)
}

func (s *service) Create(ctx context.Context, weddingID string, req domain.CreateInspirationRequest) (*domain.Inspiration, error) {
	if (req.ImageData == "") == (req.ImageURL == "") {
		return nil, fmt.Errorf("exactly one of image_data or image_url is required: %w", domain.ErrBadRequest)
	}
	insp := &domain.Inspiration{
		InspirationID: id.New(),
		WeddingID:     weddingID,
		Title:         req.Title,
		ImageData:     req.ImageData,
		ImageURL:      req.ImageURL,
		SourceLink:    req.SourceLink,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

func (s *service) Delete(ctx context.Context, weddingID, inspirationID string) error {
	insp, err := s.repo.Get(ctx, inspirationID)
	if err != nil {
		return err
	}
	if insp.WeddingID != weddingID {
		return fmt.Errorf("inspiration belongs to another wedding: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, inspirationID)
}
