package domain

import "time"

// Broadcast audience targets.
const (
	TargetAll     = "all"
	TargetCouples = "couples"
)

// Campaign trigger anchors. Offsets are applied in whole calendar days.
const (
	TriggerRelativeToSignup      = "relativeToSignup"
	TriggerRelativeToWeddingDate = "relativeToWeddingDate"
)

// Broadcast is an admin-authored announcement delivered to every user,
// or to couples only when Target is "couples".
type Broadcast struct {
	BroadcastID string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Target      string    `json:"target" firestore:"target"`
	ButtonLabel string    `json:"button_label,omitempty" firestore:"buttonLabel,omitempty"`
	ButtonURL   string    `json:"button_url,omitempty" firestore:"buttonUrl,omitempty"`
	CreatedAt   time.Time `json:"created" firestore:"createdAt,serverTimestamp"`
}

// CampaignRule schedules a notification at a per-user moment: the anchor date
// named by TriggerType shifted by OffsetDays. Inactive rules never fire.
type CampaignRule struct {
	CampaignID  string    `json:"id" firestore:"-"`
	Name        string    `json:"name" firestore:"name"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	ButtonLabel string    `json:"button_label,omitempty" firestore:"buttonLabel,omitempty"`
	ButtonURL   string    `json:"button_url,omitempty" firestore:"buttonUrl,omitempty"`
	TriggerType string    `json:"trigger_type" firestore:"triggerType"`
	OffsetDays  int       `json:"offset_days" firestore:"offsetDays"`
	IsActive    bool      `json:"is_active" firestore:"isActive"`
	CreatedAt   time.Time `json:"created" firestore:"createdAt,serverTimestamp"`
}

// NotificationState is the per-user overlay for a single notification source
// (a broadcast or campaign id). Absent fields mean unread and not deleted.
type NotificationState struct {
	SourceID string `json:"id" firestore:"-"`
	Read     bool   `json:"read" firestore:"read"`
	Deleted  bool   `json:"deleted" firestore:"deleted"`
}

// ResolvedNotification is a feed entry computed for one user. It is never
// persisted; the resolver derives it from broadcasts, campaigns and state.
type ResolvedNotification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ButtonLabel string    `json:"button_label,omitempty"`
	ButtonURL   string    `json:"button_url,omitempty"`
	CreatedAt   time.Time `json:"created"`
	IsRead      bool      `json:"is_read"`
	IsCampaign  bool      `json:"is_campaign"`
}

type CreateBroadcastRequest struct {
	Title       string `json:"title" validate:"required,max=140"`
	Description string `json:"description" validate:"required,max=1000"`
	Target      string `json:"target" validate:"required,oneof=all couples"`
	ButtonLabel string `json:"button_label" validate:"max=60"`
	ButtonURL   string `json:"button_url" validate:"omitempty,url"`
}

type CreateCampaignRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	Title       string `json:"title" validate:"required,max=140"`
	Description string `json:"description" validate:"required,max=1000"`
	ButtonLabel string `json:"button_label" validate:"max=60"`
	ButtonURL   string `json:"button_url" validate:"omitempty,url"`
	TriggerType string `json:"trigger_type" validate:"required,oneof=relativeToSignup relativeToWeddingDate"`
	OffsetDays  int    `json:"offset_days" validate:"gte=-365,lte=365"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=80"`
	Title       *string `json:"title" validate:"omitempty,max=140"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ButtonLabel *string `json:"button_label" validate:"omitempty,max=60"`
	ButtonURL   *string `json:"button_url" validate:"omitempty,url"`
	TriggerType *string `json:"trigger_type" validate:"omitempty,oneof=relativeToSignup relativeToWeddingDate"`
	OffsetDays  *int    `json:"offset_days" validate:"omitempty,gte=-365,lte=365"`
	IsActive    *bool   `json:"is_active"`
}
