package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionCommand is the engine's input: a requested money movement
// before any authorization has happened. The caller identity is never
// part of the command; it arrives out-of-band from the token.
type TransactionCommand struct {
	Kind              string
	Amount            int64
	SenderAccountID   *uuid.UUID
	ReceiverAccountID *uuid.UUID
	IdempotencyKey    string
}

// TransactionCreate is a DTO for persisting a validated transaction.
// CallerUserID records who initiated the movement; together with the
// idempotency key it forms the replay identity of the record.
type TransactionCreate struct {
	ID                uuid.UUID
	CallerUserID      uuid.UUID
	Kind              string
	Amount            int64
	SenderAccountID   *uuid.UUID
	ReceiverAccountID *uuid.UUID
	IdempotencyKey    string
	CreatedAt         time.Time
}

// TransactionRead is a read-optimized DTO for transaction queries and
// API responses.
type TransactionRead struct {
	ID                uuid.UUID  `json:"id"`
	Kind              string     `json:"kind"`
	Amount            int64      `json:"amount"`
	SenderAccountID   *uuid.UUID `json:"sender_account_id,omitempty"`
	ReceiverAccountID *uuid.UUID `json:"receiver_account_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
