package domain

import "time"

// Guest RSVP statuses.
const (
	GuestStatusPending   = "pending"
	GuestStatusConfirmed = "confirmed"
	GuestStatusDeclined  = "declined"
)

type Guest struct {
	GuestID    string     `json:"id" firestore:"-"`
	WeddingID  string     `json:"wedding_id" firestore:"weddingId"`
	Name       string     `json:"name" firestore:"name"`
	Email      string     `json:"email,omitempty" firestore:"email,omitempty"`
	Phone      string     `json:"phone,omitempty" firestore:"phone,omitempty"`
	Companions int        `json:"companions" firestore:"companions"`
	Group      string     `json:"group,omitempty" firestore:"group,omitempty"`
	Status     string     `json:"status" firestore:"status"`
	InvitedAt  *time.Time `json:"invited_at,omitempty" firestore:"invitedAt,omitempty"`
	CreatedAt  time.Time  `json:"created" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updated" firestore:"updatedAt"`
}

type CreateGuestRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,e164"`
	Companions int    `json:"companions" validate:"gte=0,lte=20"`
	Group      string `json:"group" validate:"max=60"`
}

type UpdateGuestRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=120"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,e164"`
	Companions *int    `json:"companions" validate:"omitempty,gte=0,lte=20"`
	Group      *string `json:"group" validate:"omitempty,max=60"`
	Status     *string `json:"status" validate:"omitempty,oneof=pending confirmed declined"`
}

type GuestRSVPRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed declined"`
}

// GuestSummary aggregates RSVP counts for a wedding. Seats counts confirmed
// guests plus their companions.
type GuestSummary struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
	Pending   int `json:"pending"`
	Seats     int `json:"seats"`
}
