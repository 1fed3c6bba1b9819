package domain

import "time"

type Session struct {
	SessionID        string    `json:"id" firestore:"-"`
	UserID           string    `json:"user_id" firestore:"userId"`
	RefreshTokenHash string    `json:"-" firestore:"refreshTokenHash"`
	RefreshExpiresAt time.Time `json:"-" firestore:"refreshExpiresAt"`
	Enable           bool      `json:"enable" firestore:"enable"`
	CreatedAt        time.Time `json:"created" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updated" firestore:"updatedAt"`
	User             *User     `json:"user,omitempty" firestore:"-"`
}
