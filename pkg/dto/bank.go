package dto

import (
	"time"

	"github.com/google/uuid"
)

// BankCreate is a DTO for creating a new bank.
type BankCreate struct {
	ID   uuid.UUID
	Name string
}

// BankUpdate is a DTO for renaming a bank.
type BankUpdate struct {
	Name *string
}

// BankRead is a read-optimized DTO for bank queries and API responses.
type BankRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchCreate is a DTO for creating a new branch.
type BranchCreate struct {
	ID      uuid.UUID
	Name    string
	Address string
	BankID  uuid.UUID
}

// BranchUpdate is a DTO for updating one or more branch fields.
type BranchUpdate struct {
	Name    *string
	Address *string
}

// BranchRead is a read-optimized DTO for branch queries and API responses.
type BranchRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	BankID    uuid.UUID `json:"bank_id"`
	CreatedAt time.Time `json:"created_at"`
}
