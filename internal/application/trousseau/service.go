package trousseau

import (
	"context"
	"fmt"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/id"
)

// Firestore field names used in partial update maps.
const (
	fieldRoom     = "room"
	fieldName     = "name"
	fieldQuantity = "quantity"
	fieldAcquired = "acquired"
)

type Service interface {
	List(ctx context.Context, weddingID string) ([]domain.TrousseauItem, error)
	Progress(ctx context.Context, weddingID string) ([]domain.TrousseauProgress, error)
	Create(ctx context.Context, weddingID string, req domain.CreateTrousseauItemRequest) (*domain.TrousseauItem, error)
	Update(ctx context.Context, weddingID, itemID string, req domain.UpdateTrousseauItemRequest) (*domain.TrousseauItem, error)
	Toggle(ctx context.Context, weddingID, itemID string) (*domain.TrousseauItem, error)
	Delete(ctx context.Context, weddingID, itemID string) error
}

type trousseauStore interface {
	Put(ctx context.Context, item *domain.TrousseauItem) error
	Get(ctx context.Context, itemID string) (*domain.TrousseauItem, error)
	ListByWedding(ctx context.Context, weddingID string) ([]domain.TrousseauItem, error)
	Update(ctx context.Context, itemID string, updates map[string]interface{}) error
	Delete(ctx context.Context, itemID string) error
}

type service struct {
	repo trousseauStore
}

func NewService(repo trousseauStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, weddingID string) ([]domain.TrousseauItem, error) {
	return s.repo.ListByWedding(ctx, weddingID)
}

// Progress aggregates per room, in the room order the list already has.
func (s *service) Progress(ctx context.Context, weddingID string) ([]domain.TrousseauProgress, error) {
	items, err := s.repo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	byRoom := map[string]int{}
	progress := make([]domain.TrousseauProgress, 0)
	for _, it := range items {
		idx, ok := byRoom[it.Room]
		if !ok {
			idx = len(progress)
			byRoom[it.Room] = idx
			progress = append(progress, domain.TrousseauProgress{Room: it.Room})
		}
		progress[idx].Total++
		if it.Acquired {
			progress[idx].Acquired++
		}
	}
	return progress, nil
}

func (s *service) Create(ctx context.Context, weddingID string, req domain.CreateTrousseauItemRequest) (*domain.TrousseauItem, error) {
	now := time.Now().UTC()
	item := &domain.TrousseauItem{
		ItemID:    id.New(),
		WeddingID: weddingID,
		Room:      req.Room,
		Name:      req.Name,
		Quantity:  req.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) owned(ctx context.Context, weddingID, itemID string) (*domain.TrousseauItem, error) {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.WeddingID != weddingID {
		return nil, fmt.Errorf("trousseau item belongs to another wedding: %w", domain.ErrForbidden)
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, weddingID, itemID string, req domain.UpdateTrousseauItemRequest) (*domain.TrousseauItem, error) {
	if _, err := s.owned(ctx, weddingID, itemID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Room != nil {
		updates[fieldRoom] = *req.Room
	}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Quantity != nil {
		updates[fieldQuantity] = *req.Quantity
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, itemID)
	}
	if err := s.repo.Update(ctx, itemID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, itemID)
}

// Toggle flips the acquired flag. The checklist UI has no other write.
func (s *service) Toggle(ctx context.Context, weddingID, itemID string) (*domain.TrousseauItem, error) {
	item, err := s.owned(ctx, weddingID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, itemID, map[string]interface{}{fieldAcquired: !item.Acquired}); err != nil {
		return nil, err
	}
	item.Acquired = !item.Acquired
	return item, nil
}

func (s *service) Delete(ctx context.Context, weddingID, itemID string) error {
	if _, err := s.owned(ctx, weddingID, itemID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID)
}
