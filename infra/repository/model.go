// Package repository contains the GORM-backed implementations of the
// data access contracts in pkg/repository.
package repository

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"not null;size:100"`
	Email          string    `gorm:"uniqueIndex;not null;size:255"`
	HashedPassword string    `gorm:"not null;size:100"`
	PhoneNumber    string    `gorm:"size:32"`
	Address        string    `gorm:"size:255"`
	Role           string    `gorm:"not null;size:16;default:'user'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Bank represents a bank record in the database.
type Bank struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch represents a branch record in the database.
type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:100"`
	Address   string    `gorm:"size:255"`
	BankID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account represents an account record in the database. The pair
// (user_id, bank_id) is unique: a user holds at most one account per
// bank.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_user_bank"`
	BankID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_user_bank"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction represents a ledger record. Sender and receiver are
// nullable: deposits have no sender, withdrawals no receiver. The
// idempotency key is unique per caller when present, so replay
// detection never crosses user boundaries.
type Transaction struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	CallerUserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_transactions_caller_idem_key"`
	Kind              string     `gorm:"not null;size:16"`
	Amount            int64      `gorm:"not null"`
	SenderAccountID   *uuid.UUID `gorm:"type:uuid;index"`
	ReceiverAccountID *uuid.UUID `gorm:"type:uuid;index"`
	IdempotencyKey    *string    `gorm:"uniqueIndex:idx_transactions_caller_idem_key;size:255"`
	CreatedAt         time.Time
}
