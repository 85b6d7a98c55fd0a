package domain

import "github.com/google/uuid"

// Project groups trades under a single owner. The owner never changes
// after creation; updates may only touch name and category.
type Project struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}
