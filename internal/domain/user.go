package domain

import "time"

// Platform roles. Bride and groom share the couple privileges on their wedding;
// guests only see what the couple shares with them.
const (
	RoleAdmin = "admin"
	RoleBride = "bride"
	RoleGroom = "groom"
	RoleGuest = "guest"
)

// IsCouple reports whether the role belongs to one of the engaged pair.
func IsCouple(role string) bool {
	return role == RoleBride || role == RoleGroom
}

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

type User struct {
	UserID       string    `json:"id" firestore:"-"`
	Name         string    `json:"name" firestore:"name"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	Role         string    `json:"role" firestore:"role"`
	WeddingID    string    `json:"wedding_id,omitempty" firestore:"weddingId,omitempty"`
	AuthProvider string    `json:"auth_provider,omitempty" firestore:"authProvider"`
	GoogleSub    string    `json:"-"                       firestore:"googleSub,omitempty"`
	Enable       bool      `json:"enable" firestore:"enable"`
	CreatedAt    time.Time `json:"created" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated" firestore:"updatedAt"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=bride groom guest"`
	// CoupleName and WeddingDate seed a new wedding when a bride or groom
	// signs up without a WeddingID. WeddingDate uses YYYY-MM-DD.
	CoupleName  string `json:"couple_name" validate:"max=160"`
	WeddingDate string `json:"wedding_date" validate:"dateonly"`
	// WeddingID joins an existing wedding; required for guests.
	WeddingID string `json:"wedding_id"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
