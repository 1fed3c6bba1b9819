package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/propositos-api/internal/application/session"
	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/id"
)

// Firestore field names used in partial update maps.
const (
	fieldName         = "name"
	fieldEmail        = "email"
	fieldPasswordHash = "passwordHash"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	RegisterWithSession(ctx context.Context, req domain.CreateUserRequest) (*session.LoginResult, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
}

type weddingStore interface {
	Put(ctx context.Context, w *domain.Wedding) error
	Get(ctx context.Context, weddingID string) (*domain.Wedding, error)
}

type sessionStore interface {
	DisableByUser(ctx context.Context, userID string) error
}

type sessionStarter interface {
	StartSession(ctx context.Context, u *domain.User) (*session.LoginResult, error)
}

type service struct {
	repo        userStore
	weddingRepo weddingStore
	sessionRepo sessionStore
	sessions    sessionStarter
}

type ServiceDeps struct {
	UserRepo    userStore
	WeddingRepo weddingStore
	SessionRepo sessionStore
	Sessions    sessionStarter
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.UserRepo,
		weddingRepo: deps.WeddingRepo,
		sessionRepo: deps.SessionRepo,
		sessions:    deps.Sessions,
	}
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	weddingID, err := s.resolveWedding(ctx, req)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		WeddingID:    weddingID,
		AuthProvider: domain.AuthProviderLocal,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// resolveWedding decides which wedding the new account belongs to. A bride
// or groom without a wedding id starts a fresh one; everyone else joins an
// existing wedding by id. Guests cannot sign up without one.
func (s *service) resolveWedding(ctx context.Context, req domain.CreateUserRequest) (string, error) {
	if req.WeddingID != "" {
		if _, err := s.weddingRepo.Get(ctx, req.WeddingID); err != nil {
			return "", err
		}
		return req.WeddingID, nil
	}
	if !domain.IsCouple(req.Role) {
		return "", fmt.Errorf("guests must provide a wedding id: %w", domain.ErrBadRequest)
	}
	coupleName := req.CoupleName
	if coupleName == "" {
		coupleName = req.Name
	}
	var weddingDate *time.Time
	if req.WeddingDate != "" {
		t, err := time.Parse(time.DateOnly, req.WeddingDate)
		if err != nil {
			return "", fmt.Errorf("wedding date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		weddingDate = &t
	}
	now := time.Now().UTC()
	w := &domain.Wedding{
		WeddingID:   id.New(),
		CoupleName:  coupleName,
		WeddingDate: weddingDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.weddingRepo.Put(ctx, w); err != nil {
		return "", err
	}
	return w.WeddingID, nil
}

func (s *service) RegisterWithSession(ctx context.Context, req domain.CreateUserRequest) (*session.LoginResult, error) {
	u, err := s.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.sessions.StartSession(ctx, u)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Email != nil {
		if other, err := s.repo.GetByEmail(ctx, *req.Email); err == nil && other.UserID != userID {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		updates[fieldEmail] = *req.Email
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("account uses google sign-in: %w", domain.ErrBadRequest)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)}); err != nil {
		return err
	}
	// Every session signs out so stolen refresh tokens die with the old
	// password. The client re-logs with the new one.
	return s.sessionRepo.DisableByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	return s.sessionRepo.DisableByUser(ctx, userID)
}
