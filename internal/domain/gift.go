package domain

import "time"

// Gift is a registry entry. Guests claim gifts through a public link, so a
// claim records the claimant's name rather than a user id.
type Gift struct {
	GiftID        string     `json:"id" firestore:"-"`
	WeddingID     string     `json:"wedding_id" firestore:"weddingId"`
	Name          string     `json:"name" firestore:"name"`
	Description   string     `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURL      string     `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	ImageData     string     `json:"image_data,omitempty" firestore:"imageData,omitempty"`
	ClaimedByName string     `json:"claimed_by,omitempty" firestore:"claimedByName,omitempty"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty" firestore:"claimedAt,omitempty"`
	Thanked       bool       `json:"thanked" firestore:"thanked"`
	CreatedAt     time.Time  `json:"created" firestore:"createdAt"`
	UpdatedAt     time.Time  `json:"updated" firestore:"updatedAt"`
}

type CreateGiftRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	ImageData   string `json:"image_data"`
}

type UpdateGiftRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	ImageData   *string `json:"image_data"`
}

type ClaimGiftRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
