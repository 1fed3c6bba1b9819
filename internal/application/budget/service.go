package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/id"
)

// Firestore field names used in partial update maps.
const (
	fieldCategory     = "category"
	fieldName         = "name"
	fieldPlannedCents = "plannedCents"
	fieldPaidCents    = "paidCents"
	fieldSettled      = "settled"
	fieldNotes        = "notes"
)

type Service interface {
	List(ctx context.Context, weddingID string) ([]domain.BudgetItem, error)
	Summary(ctx context.Context, weddingID string) (*domain.BudgetSummary, error)
	Create(ctx context.Context, weddingID string, req domain.CreateBudgetItemRequest) (*domain.BudgetItem, error)
	Update(ctx context.Context, weddingID, itemID string, req domain.UpdateBudgetItemRequest) (*domain.BudgetItem, error)
	Delete(ctx context.Context, weddingID, itemID string) error
}

type budgetStore interface {
	Put(ctx context.Context, item *domain.BudgetItem) error
	Get(ctx context.Context, itemID string) (*domain.BudgetItem, error)
	ListByWedding(ctx context.Context, weddingID string) ([]domain.BudgetItem, error)
	Update(ctx context.Context, itemID string, updates map[string]interface{}) error
	Delete(ctx context.Context, itemID string) error
}

type service struct {
	repo budgetStore
}

func NewService(repo budgetStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, weddingID string) ([]domain.BudgetItem, error) {
	return s.repo.ListByWedding(ctx, weddingID)
}

func (s *service) Summary(ctx context.Context, weddingID string) (*domain.BudgetSummary, error) {
	items, err := s.repo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	sum := &domain.BudgetSummary{Items: len(items)}
	for _, it := range items {
		sum.PlannedCents += it.PlannedCents
		sum.PaidCents += it.PaidCents
		if it.Settled {
			sum.Settled++
		}
	}
	sum.RemainingCents = sum.PlannedCents - sum.PaidCents
	return sum, nil
}

func (s *service) Create(ctx context.Context, weddingID string, req domain.CreateBudgetItemRequest) (*domain.BudgetItem, error) {
	now := time.Now().UTC()
	item := &domain.BudgetItem{
		ItemID:       id.New(),
		WeddingID:    weddingID,
		Category:     req.Category,
		Name:         req.Name,
		PlannedCents: req.PlannedCents,
		PaidCents:    req.PaidCents,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) owned(ctx context.Context, weddingID, itemID string) error {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.WeddingID != weddingID {
		return fmt.Errorf("budget item belongs to another wedding: %w", domain.ErrForbidden)
	}
	return nil
}

func (s *service) Update(ctx context.Context, weddingID, itemID string, req domain.UpdateBudgetItemRequest) (*domain.BudgetItem, error) {
	if err := s.owned(ctx, weddingID, itemID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.PlannedCents != nil {
		updates[fieldPlannedCents] = *req.PlannedCents
	}
	if req.PaidCents != nil {
		updates[fieldPaidCents] = *req.PaidCents
	}
	if req.Settled != nil {
		updates[fieldSettled] = *req.Settled
	}
	if req.Notes != nil {
		updates[fieldNotes] = *req.Notes
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, itemID)
	}
	if err := s.repo.Update(ctx, itemID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, itemID)
}

func (s *service) Delete(ctx context.Context, weddingID, itemID string) error {
	if err := s.owned(ctx, weddingID, itemID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID)
}
