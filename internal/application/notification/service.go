package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/propositos-api/internal/domain"
	"github.com/propositos-api/internal/pkg/id"
)

// Firestore field names used in partial update maps.
const (
	fieldName        = "name"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldButtonLabel = "buttonLabel"
	fieldButtonURL   = "buttonUrl"
	fieldTriggerType = "triggerType"
	fieldOffsetDays  = "offsetDays"
	fieldIsActive    = "isActive"
)

type Service interface {
	Feed(ctx context.Context, userID string) (*Feed, error)
	Stream(ctx context.Context, userID string) (<-chan Feed, error)
	MarkRead(ctx context.Context, userID, sourceID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, sourceID string) error

	CreateBroadcast(ctx context.Context, req domain.CreateBroadcastRequest) (*domain.Broadcast, error)
	ListBroadcasts(ctx context.Context) ([]domain.Broadcast, error)
	DeleteBroadcast(ctx context.Context, broadcastID string) error

	CreateCampaign(ctx context.Context, req domain.CreateCampaignRequest) (*domain.CampaignRule, error)
	ListCampaigns(ctx context.Context) ([]domain.CampaignRule, error)
	UpdateCampaign(ctx context.Context, campaignID string, req domain.UpdateCampaignRequest) (*domain.CampaignRule, error)
	DeleteCampaign(ctx context.Context, campaignID string) error
}

type broadcastStore interface {
	Create(ctx context.Context, b *domain.Broadcast) error
	List(ctx context.Context) ([]domain.Broadcast, error)
	Delete(ctx context.Context, broadcastID string) error
	Watch(ctx context.Context) <-chan []domain.Broadcast
}

type campaignStore interface {
	Create(ctx context.Context, c *domain.CampaignRule) error
	Get(ctx context.Context, campaignID string) (*domain.CampaignRule, error)
	List(ctx context.Context) ([]domain.CampaignRule, error)
	Update(ctx context.Context, campaignID string, updates map[string]interface{}) error
	Delete(ctx context.Context, campaignID string) error
	Watch(ctx context.Context) <-chan []domain.CampaignRule
}

type stateStore interface {
	ListByUser(ctx context.Context, userID string) (map[string]domain.NotificationState, error)
	MarkRead(ctx context.Context, userID, sourceID string) error
	MarkDeleted(ctx context.Context, userID, sourceID string) error
	MarkAllRead(ctx context.Context, userID string, sourceIDs []string) error
	Watch(ctx context.Context, userID string) <-chan map[string]domain.NotificationState
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type weddingStore interface {
	Get(ctx context.Context, weddingID string) (*domain.Wedding, error)
}

type pushPublisher interface {
	PublishBroadcast(ctx context.Context, target, title, body string) error
}

type service struct {
	broadcasts broadcastStore
	campaigns  campaignStore
	states     stateStore
	users      userStore
	weddings   weddingStore
	push       pushPublisher
	now        func() time.Time
}

type ServiceDeps struct {
	BroadcastRepo broadcastStore
	CampaignRepo  campaignStore
	StateRepo     stateStore
	UserRepo      userStore
	WeddingRepo   weddingStore
	Push          pushPublisher
	Now           func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		broadcasts: deps.BroadcastRepo,
		campaigns:  deps.CampaignRepo,
		states:     deps.StateRepo,
		users:      deps.UserRepo,
		weddings:   deps.WeddingRepo,
		push:       deps.Push,
		now:        now,
	}
}

// profile loads the facts the resolver needs about one user. A failed
// wedding lookup only drops the wedding date, which skips date-anchored
// campaigns instead of blanking the whole feed.
func (s *service) profile(ctx context.Context, userID string) (Profile, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Role: u.Role, CreatedAt: u.CreatedAt}
	if u.WeddingID != "" {
		w, err := s.weddings.Get(ctx, u.WeddingID)
		if err != nil {
			slog.Warn("could not load wedding for feed", "user_id", userID, "wedding_id", u.WeddingID, "err", err)
		} else {
			p.WeddingDate = w.WeddingDate
		}
	}
	return p, nil
}

func (s *service) Feed(ctx context.Context, userID string) (*Feed, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	broadcasts, err := s.broadcasts.List(ctx)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}
	states, err := s.states.ListByUser(ctx, userID)
	if err != nil {
		// Fail open: a broken overlay read renders everything unseen
		// rather than hiding the feed.
		slog.Warn("could not load notification states, treating all as unseen", "user_id", userID, "err", err)
		states = map[string]domain.NotificationState{}
	}
	feed := Resolve(s.now(), p, broadcasts, campaigns, states)
	return &feed, nil
}

// MarkRead flags one source as read. Unlike overlay reads, a failed
// mutation always surfaces to the caller.
func (s *service) MarkRead(ctx context.Context, userID, sourceID string) error {
	return s.states.MarkRead(ctx, userID, sourceID)
}

// MarkAllRead flags every currently unread feed item.
func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	feed, err := s.Feed(ctx, userID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(feed.Items))
	for _, it := range feed.Items {
		if !it.IsRead {
			ids = append(ids, it.ID)
		}
	}
	return s.states.MarkAllRead(ctx, userID, ids)
}

// Delete hides one source from this user forever. MarkRead afterwards
// cannot bring it back.
func (s *service) Delete(ctx context.Context, userID, sourceID string) error {
	return s.states.MarkDeleted(ctx, userID, sourceID)
}

func (s *service) CreateBroadcast(ctx context.Context, req domain.CreateBroadcastRequest) (*domain.Broadcast, error) {
	b := &domain.Broadcast{
		BroadcastID: id.New(),
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target,
		ButtonLabel: req.ButtonLabel,
		ButtonURL:   req.ButtonURL,
	}
	if err := s.broadcasts.Create(ctx, b); err != nil {
		return nil, err
	}
	if s.push != nil {
		if err := s.push.PublishBroadcast(ctx, b.Target, b.Title, b.Description); err != nil {
			slog.Warn("broadcast push failed", "broadcast_id", b.BroadcastID, "err", err)
		}
	}
	return b, nil
}

func (s *service) ListBroadcasts(ctx context.Context) ([]domain.Broadcast, error) {
	return s.broadcasts.List(ctx)
}

func (s *service) DeleteBroadcast(ctx context.Context, broadcastID string) error {
	return s.broadcasts.Delete(ctx, broadcastID)
}

func (s *service) CreateCampaign(ctx context.Context, req domain.CreateCampaignRequest) (*domain.CampaignRule, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := &domain.CampaignRule{
		CampaignID:  id.New(),
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		ButtonLabel: req.ButtonLabel,
		ButtonURL:   req.ButtonURL,
		TriggerType: req.TriggerType,
		OffsetDays:  req.OffsetDays,
		IsActive:    active,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCampaigns(ctx context.Context) ([]domain.CampaignRule, error) {
	return s.campaigns.List(ctx)
}

func (s *service) UpdateCampaign(ctx context.Context, campaignID string, req domain.UpdateCampaignRequest) (*domain.CampaignRule, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.ButtonLabel != nil {
		updates[fieldButtonLabel] = *req.ButtonLabel
	}
	if req.ButtonURL != nil {
		updates[fieldButtonURL] = *req.ButtonURL
	}
	if req.TriggerType != nil {
		switch *req.TriggerType {
		case domain.TriggerRelativeToSignup, domain.TriggerRelativeToWeddingDate:
			updates[fieldTriggerType] = *req.TriggerType
		default:
			return nil, fmt.Errorf("invalid trigger type: %w", domain.ErrBadRequest)
		}
	}
	if req.OffsetDays != nil {
		updates[fieldOffsetDays] = *req.OffsetDays
	}
	if req.IsActive != nil {
		updates[fieldIsActive] = *req.IsActive
	}
	if len(updates) == 0 {
		return s.campaigns.Get(ctx, campaignID)
	}
	if err := s.campaigns.Update(ctx, campaignID, updates); err != nil {
		return nil, err
	}
	return s.campaigns.Get(ctx, campaignID)
}

func (s *service) DeleteCampaign(ctx context.Context, campaignID string) error {
	return s.campaigns.Delete(ctx, campaignID)
}
