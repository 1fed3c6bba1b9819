package guest

import (
	"context"
	"fmt"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/infrastructure/smtp"
	"github.com/propositos-api/internal/infrastructure/sns"
	"github.com/propositos-api/internal/pkg/id"
)

// Firestore field names used in partial update maps.
const (
	fieldName       = "name"
	fieldEmail      = "email"
	fieldPhone      = "phone"
	fieldCompanions = "companions"
	fieldGroup      = "group"
	fieldStatus     = "status"
	fieldInvitedAt  = "invitedAt"
)

type Service interface {
	List(ctx context.Context, weddingID string) ([]domain.Guest, error)
	Summary(ctx context.Context, weddingID string) (*domain.GuestSummary, error)
	Create(ctx context.Context, weddingID string, req domain.CreateGuestRequest) (*domain.Guest, error)
	Update(ctx context.Context, weddingID, guestID string, req domain.UpdateGuestRequest) (*domain.Guest, error)
	Delete(ctx context.Context, weddingID, guestID string) error
	Invite(ctx context.Context, weddingID, guestID string) error
	Remind(ctx context.Context, weddingID, guestID string) error

	// GetForRSVP and RSVP serve the public invitation page. The guest id is
	// the only credential: ids are unguessable and shared one per invite.
	GetForRSVP(ctx context.Context, guestID string) (*domain.Guest, error)
	RSVP(ctx context.Context, guestID string, req domain.GuestRSVPRequest) error
}

type guestStore interface {
	Put(ctx context.Context, g *domain.Guest) error
	Get(ctx context.Context, guestID string) (*domain.Guest, error)
	ListByWedding(ctx context.Context, weddingID string) ([]domain.Guest, error)
	Update(ctx context.Context, guestID string, updates map[string]interface{}) error
	Delete(ctx context.Context, guestID string) error
}

type weddingStore interface {
	Get(ctx context.Context, weddingID string) (*domain.Wedding, error)
}

type service struct {
	repo        guestStore
	weddingRepo weddingStore
	mailer      smtp.Mailer
	sms         sns.SMSSender
	rsvpBaseURL string
}

type ServiceDeps struct {
	GuestRepo   guestStore
	WeddingRepo weddingStore
	Mailer      smtp.Mailer
	SMS         sns.SMSSender
	RSVPBaseURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.GuestRepo,
		weddingRepo: deps.WeddingRepo,
		mailer:      deps.Mailer,
		sms:         deps.SMS,
		rsvpBaseURL: deps.RSVPBaseURL,
	}
}

func (s *service) List(ctx context.Context, weddingID string) ([]domain.Guest, error) {
	return s.repo.ListByWedding(ctx, weddingID)
}

func (s *service) Summary(ctx context.Context, weddingID string) (*domain.GuestSummary, error) {
	guests, err := s.repo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	sum := &domain.GuestSummary{Total: len(guests)}
	for _, g := range guests {
		switch g.Status {
		case domain.GuestStatusConfirmed:
			sum.Confirmed++
			sum.Seats += 1 + g.Companions
		case domain.GuestStatusDeclined:
			sum.Declined++
		default:
			sum.Pending++
		}
	}
	return sum, nil
}

func (s *service) Create(ctx context.Context, weddingID string, req domain.CreateGuestRequest) (*domain.Guest, error) {
	now := time.Now().UTC()
	g := &domain.Guest{
		GuestID:    id.New(),
		WeddingID:  weddingID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Companions: req.Companions,
		Group:      req.Group,
		Status:     domain.GuestStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// owned loads a guest and verifies it belongs to the caller's wedding.
func (s *service) owned(ctx context.Context, weddingID, guestID string) (*domain.Guest, error) {
	g, err := s.repo.Get(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if g.WeddingID != weddingID {
		return nil, fmt.Errorf("guest belongs to another wedding: %w", domain.ErrForbidden)
	}
	return g, nil
}

func (s *service) Update(ctx context.Context, weddingID, guestID string, req domain.UpdateGuestRequest) (*domain.Guest, error) {
	if _, err := s.owned(ctx, weddingID, guestID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Companions != nil {
		updates[fieldCompanions] = *req.Companions
	}
	if req.Group != nil {
		updates[fieldGroup] = *req.Group
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, guestID)
	}
	if err := s.repo.Update(ctx, guestID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, guestID)
}

func (s *service) Delete(ctx context.Context, weddingID, guestID string) error {
	if _, err := s.owned(ctx, weddingID, guestID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, guestID)
}

func (s *service) Invite(ctx context.Context, weddingID, guestID string) error {
	g, err := s.owned(ctx, weddingID, guestID)
	if err != nil {
		return err
	}
	if g.Email == "" {
		return fmt.Errorf("guest has no email: %w", domain.ErrBadRequest)
	}
	w, err := s.weddingRepo.Get(ctx, weddingID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("You are invited to the wedding of %s", w.CoupleName)
	body := fmt.Sprintf("Hello %s,\n\n%s would love to have you at their wedding.", g.Name, w.CoupleName)
	if w.WeddingDate != nil {
		body += fmt.Sprintf("\nDate: %s.", w.WeddingDate.Format("January 2, 2006"))
	}
	body += fmt.Sprintf("\n\nPlease confirm your attendance:\n%s/rsvp/%s\n", s.rsvpBaseURL, g.GuestID)
	if err := s.mailer.SendEmail(g.Email, subject, body); err != nil {
		return fmt.Errorf("send invitation: %w", err)
	}
	now := time.Now().UTC()
	return s.repo.Update(ctx, guestID, map[string]interface{}{fieldInvitedAt: now})
}

func (s *service) Remind(ctx context.Context, weddingID, guestID string) error {
	g, err := s.owned(ctx, weddingID, guestID)
	if err != nil {
		return err
	}
	if g.Status != domain.GuestStatusPending {
		return fmt.Errorf("guest already answered: %w", domain.ErrConflict)
	}
	if g.Phone == "" {
		return fmt.Errorf("guest has no phone: %w", domain.ErrBadRequest)
	}
	w, err := s.weddingRepo.Get(ctx, weddingID)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s, please confirm your attendance at the wedding of %s: %s/rsvp/%s",
		g.Name, w.CoupleName, s.rsvpBaseURL, g.GuestID)
	return s.sms.SendSMS(ctx, g.Phone, msg)
}

func (s *service) GetForRSVP(ctx context.Context, guestID string) (*domain.Guest, error) {
	return s.repo.Get(ctx, guestID)
}

func (s *service) RSVP(ctx context.Context, guestID string, req domain.GuestRSVPRequest) error {
	if _, err := s.repo.Get(ctx, guestID); err != nil {
		return err
	}
	return s.repo.Update(ctx, guestID, map[string]interface{}{fieldStatus: req.Status})
}
