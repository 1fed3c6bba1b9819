package wedding

import (
	"context"
	"fmt"
	"time"

	"github.com/propositos-api/internal/domain"
)

// Firestore field names used in partial update maps.
const (
	fieldCoupleName  = "coupleName"
	fieldWeddingDate = "weddingDate"
	fieldCity        = "city"
)

type Service interface {
	Get(ctx context.Context, weddingID string) (*domain.Wedding, error)
	Members(ctx context.Context, weddingID string) ([]domain.User, error)
	Update(ctx context.Context, weddingID string, req domain.UpdateWeddingRequest) (*domain.Wedding, error)
}

type weddingStore interface {
	Get(ctx context.Context, weddingID string) (*domain.Wedding, error)
	Update(ctx context.Context, weddingID string, updates map[string]interface{}) error
}

type userStore interface {
	ListByWedding(ctx context.Context, weddingID string) ([]domain.User, error)
}

type service struct {
	repo  weddingStore
	users userStore
}

func NewService(repo weddingStore, users userStore) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Get(ctx context.Context, weddingID string) (*domain.Wedding, error) {
	return s.repo.Get(ctx, weddingID)
}

// Members returns the couple accounts attached to the wedding. Guest
// accounts live in the invite list, not here.
func (s *service) Members(ctx context.Context, weddingID string) ([]domain.User, error) {
	all, err := s.users.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	members := make([]domain.User, 0, 2)
	for _, u := range all {
		if u.Enable && domain.IsCouple(u.Role) {
			members = append(members, u)
		}
	}
	return members, nil
}

func (s *service) Update(ctx context.Context, weddingID string, req domain.UpdateWeddingRequest) (*domain.Wedding, error) {
	updates := map[string]interface{}{}
	if req.CoupleName != nil {
		updates[fieldCoupleName] = *req.CoupleName
	}
	if req.WeddingDate != nil {
		if *req.WeddingDate == "" {
			// A couple that has not set the date yet, or called it off.
			updates[fieldWeddingDate] = nil
		} else {
			t, err := time.Parse(time.DateOnly, *req.WeddingDate)
			if err != nil {
				return nil, fmt.Errorf("wedding date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
			}
			updates[fieldWeddingDate] = t
		}
	}
	if req.City != nil {
		updates[fieldCity] = *req.City
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, weddingID)
	}
	if err := s.repo.Update(ctx, weddingID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, weddingID)
}
