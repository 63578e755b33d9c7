package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountCreate is a DTO for opening a new account.
type AccountCreate struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	BankID   uuid.UUID
	BranchID uuid.UUID
	Balance  int64
}

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BankID    uuid.UUID `json:"bank_id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
