package domain

import "time"

// Inspiration is a mood-board entry. Exactly one of ImageData (inline data
// URL produced by the media pipeline) or ImageURL (external, e.g. a search
// result) is set.
type Inspiration struct {
	InspirationID string    `json:"id" firestore:"-"`
	WeddingID     string    `json:"wedding_id" firestore:"weddingId"`
	Title         string    `json:"title" firestore:"title"`
	ImageData     string    `json:"image_data,omitempty" firestore:"imageData,omitempty"`
	ImageURL      string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	SourceLink    string    `json:"source_link,omitempty" firestore:"sourceLink,omitempty"`
	CreatedAt     time.Time `json:"created" firestore:"createdAt"`
}

type CreateInspirationRequest struct {
	Title      string `json:"title" validate:"required,max=120"`
	ImageData  string `json:"image_data"`
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
	SourceLink string `json:"source_link" validate:"omitempty,url"`
}
