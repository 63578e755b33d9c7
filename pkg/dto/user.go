package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to create a new user.
type UserCreate struct {
	ID             uuid.UUID
	Name           string
	Email          string
	HashedPassword string
	PhoneNumber    string
	Address        string
	Role           string
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Address        string    `json:"address,omitempty"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
