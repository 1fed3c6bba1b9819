package domain

import "time"

type TrousseauItem struct {
	ItemID    string    `json:"id" firestore:"-"`
	WeddingID string    `json:"wedding_id" firestore:"weddingId"`
	Room      string    `json:"room" firestore:"room"`
	Name      string    `json:"name" firestore:"name"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	Acquired  bool      `json:"acquired" firestore:"acquired"`
	CreatedAt time.Time `json:"created" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated" firestore:"updatedAt"`
}

type CreateTrousseauItemRequest struct {
	Room     string `json:"room" validate:"required,max=60"`
	Name     string `json:"name" validate:"required,max=120"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=99"`
}

type UpdateTrousseauItemRequest struct {
	Room     *string `json:"room" validate:"omitempty,max=60"`
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Quantity *int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

// TrousseauProgress reports acquisition progress for one room.
type TrousseauProgress struct {
	Room     string `json:"room"`
	Total    int    `json:"total"`
	Acquired int    `json:"acquired"`
}
