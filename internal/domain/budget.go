package domain

import "time"

// BudgetItem tracks one planned expense. Amounts are integer cents to keep
// summary arithmetic exact.
type BudgetItem struct {
	ItemID       string    `json:"id" firestore:"-"`
	WeddingID    string    `json:"wedding_id" firestore:"weddingId"`
	Category     string    `json:"category" firestore:"category"`
	Name         string    `json:"name" firestore:"name"`
	PlannedCents int64     `json:"planned_cents" firestore:"plannedCents"`
	PaidCents    int64     `json:"paid_cents" firestore:"paidCents"`
	Settled      bool      `json:"settled" firestore:"settled"`
	Notes        string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt    time.Time `json:"created" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated" firestore:"updatedAt"`
}

type CreateBudgetItemRequest struct {
	Category     string `json:"category" validate:"required,max=60"`
	Name         string `json:"name" validate:"required,max=120"`
	PlannedCents int64  `json:"planned_cents" validate:"gte=0"`
	PaidCents    int64  `json:"paid_cents" validate:"gte=0"`
	Notes        string `json:"notes" validate:"max=500"`
}

type UpdateBudgetItemRequest struct {
	Category     *string `json:"category" validate:"omitempty,max=60"`
	Name         *string `json:"name" validate:"omitempty,max=120"`
	PlannedCents *int64  `json:"planned_cents" validate:"omitempty,gte=0"`
	PaidCents    *int64  `json:"paid_cents" validate:"omitempty,gte=0"`
	Settled      *bool   `json:"settled"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`
}

type BudgetSummary struct {
	PlannedCents   int64 `json:"planned_cents"`
	PaidCents      int64 `json:"paid_cents"`
	RemainingCents int64 `json:"remaining_cents"`
	Items          int   `json:"items"`
	Settled        int   `json:"settled"`
}
