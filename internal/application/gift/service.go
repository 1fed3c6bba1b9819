package gift

import (
	"context"
	"fmt"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/id"
)

// Firestore field names used in partial update maps.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldImageURL    = "imageUrl"
	fieldImageData   = "imageData"
	fieldThanked     = "thanked"
)

type Service interface {
	List(ctx context.Context, weddingID string) ([]domain.Gift, error)
	Create(ctx context.Context, weddingID string, req domain.CreateGiftRequest) (*domain.Gift, error)
	Update(ctx context.Context, weddingID, giftID string, req domain.UpdateGiftRequest) (*domain.Gift, error)
	Delete(ctx context.Context, weddingID, giftID string) error
	Thank(ctx context.Context, weddingID, giftID string) error

	// PublicList and Claim serve the shared registry page. The wedding id in
	// the link is the only credential, like a guest's RSVP id.
	PublicList(ctx context.Context, weddingID string) ([]domain.Gift, error)
	Claim(ctx context.Context, giftID string, req domain.ClaimGiftRequest) (*domain.Gift, error)
}

type giftStore interface {
	Put(ctx context.Context, g *domain.Gift) error
	Get(ctx context.Context, giftID string) (*domain.Gift, error)
	ListByWedding(ctx context.Context, weddingID string) ([]domain.Gift, error)
	Update(ctx context.Context, giftID string, updates map[string]interface{}) error
	Delete(ctx context.Context, giftID string) error
	Claim(ctx context.Context, giftID, claimantName string, at time.Time) error
}

type weddingStore interface {
	Get(ctx context.Context, weddingID string) (*domain.Wedding, error)
}

type service struct {
	repo        giftStore
	weddingRepo weddingStore
}

func NewService(repo giftStore, weddingRepo weddingStore) Service {
	return &service{repo: repo, weddingRepo: weddingRepo}
}

func (s *service) List(ctx context.Context, weddingID string) ([]domain.Gift, error) {
	return s.repo.ListByWedding(ctx, weddingID)
}

func (s *service) Create(ctx context.Context, weddingID string, req domain.CreateGiftRequest) (*domain.Gift, error) {
	now := time.Now().UTC()
	g := &domain.Gift{
		GiftID:      id.New(),
		WeddingID:   weddingID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ImageData:   req.ImageData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) owned(ctx context.Context, weddingID, giftID string) (*domain.Gift, error) {
	g, err := s.repo.Get(ctx, giftID)
	if err != nil {
		return nil, err
	}
	if g.WeddingID != weddingID {
		return nil, fmt.Errorf("gift belongs to another wedding: %w", domain.ErrForbidden)
	}
	return g, nil
}

func (s *service) Update(ctx context.Context, weddingID, giftID string, req domain.UpdateGiftRequest) (*domain.Gift, error) {
	if _, err := s.owned(ctx, weddingID, giftID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.ImageURL != nil {
		updates[fieldImageURL] = *req.ImageURL
	}
	if req.ImageData != nil {
		updates[fieldImageData] = *req.ImageData
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, giftID)
	}
	if err := s.repo.Update(ctx, giftID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, giftID)
}

func (s *service) Delete(ctx context.Context, weddingID, giftID string) error {
	if _, err := s.owned(ctx, weddingID, giftID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, giftID)
}

func (s *service) Thank(ctx context.Context, weddingID, giftID string) error {
	g, err := s.owned(ctx, weddingID, giftID)
	if err != nil {
		return err
	}
	if g.ClaimedByName == "" {
		return fmt.Errorf("gift has not been claimed: %w", domain.ErrConflict)
	}
	return s.repo.Update(ctx, giftID, map[string]interface{}{fieldThanked: true})
}

func (s *service) PublicList(ctx context.Context, weddingID string) ([]domain.Gift, error) {
	if _, err := s.weddingRepo.Get(ctx, weddingID); err != nil {
		return nil, err
	}
	return s.repo.ListByWedding(ctx, weddingID)
}

// Claim reserves a gift for a named guest. The store runs it as a
// transaction, so two guests racing for the last toaster cannot both win.
func (s *service) Claim(ctx context.Context, giftID string, req domain.ClaimGiftRequest) (*domain.Gift, error) {
	if err := s.repo.Claim(ctx, giftID, req.Name, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, giftID)
}
