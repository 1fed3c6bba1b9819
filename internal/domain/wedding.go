package domain

import "time"

// Wedding is the tenant boundary. Every couple-scoped record carries its id.
type Wedding struct {
	WeddingID   string     `json:"id" firestore:"-"`
	CoupleName  string     `json:"couple_name" firestore:"coupleName"`
	WeddingDate *time.Time `json:"wedding_date,omitempty" firestore:"weddingDate,omitempty"`
	City        string     `json:"city,omitempty" firestore:"city,omitempty"`
	CreatedAt   time.Time  `json:"created" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated" firestore:"updatedAt"`
}

type UpdateWeddingRequest struct {
	CoupleName *string `json:"couple_name" validate:"omitempty,max=160"`
	// WeddingDate uses YYYY-MM-DD; an empty string clears the date.
	WeddingDate *string `json:"wedding_date" validate:"omitempty,dateonly"`
	City        *string `json:"city" validate:"omitempty,max=120"`
}
