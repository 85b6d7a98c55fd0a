package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the journal
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRole constants. The first account ever registered is promoted to admin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Actor is the already-authenticated identity attached to every request.
// The identity layer produces it; the core trusts it without re-verifying.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
