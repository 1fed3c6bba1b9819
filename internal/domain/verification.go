package domain

import "time"

// UserVerification is a short-lived password recovery code. One document per
// user, keyed by user id, so requesting a new code replaces the old one. The
// type never leaves the backend.
type UserVerification struct {
	UserID    string    `firestore:"-"`
	Code      string    `firestore:"code"`
	ExpiresAt time.Time `firestore:"expiresAt"`
	CreatedAt time.Time `firestore:"createdAt"`
}
