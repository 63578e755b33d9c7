// Package repository defines the data access contracts consumed by the
// service layer. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/dto"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, create dto.UserCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)
}

// BankRepository defines the interface for bank data access operations.
type BankRepository interface {
	Create(ctx context.Context, create dto.BankCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.BankRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.BankUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]*dto.BankRead, error)
}

// BranchRepository defines the interface for branch data access operations.
type BranchRepository interface {
	Create(ctx context.Context, create dto.BranchCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.BranchRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.BranchUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByBank(ctx context.Context, bankID uuid.UUID) ([]*dto.BranchRead, error)
}

// AccountRepository defines the interface for account data access
// operations. Get returns nil, nil when the account does not exist so
// callers can map absence to their own error.
type AccountRepository interface {
	Create(ctx context.Context, create dto.AccountCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)
	// GetForUpdate reads the account while holding a row-level lock for
	// the remainder of the surrounding unit of work. Every balance
	// mutation must read through this method.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)
	GetByUserAndBank(ctx context.Context, userID, bankID uuid.UUID) (*dto.AccountRead, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error
}

// TransactionRepository is the append-only ledger of completed
// transactions. Records are created once and never updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, create dto.TransactionCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	// GetByIdempotencyKey returns the transaction callerUserID already
	// recorded under the key, or nil, nil when none exists. Keys are
	// scoped per caller: one user's key never resolves another user's
	// record.
	GetByIdempotencyKey(ctx context.Context, callerUserID uuid.UUID, key string) (*dto.TransactionRead, error)
	// ListByAccount returns every record referencing the account as
	// sender or receiver, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)
}

// UnitOfWork provides a transaction boundary and repository access in
// one abstraction. All repositories obtained inside Do share the same
// DB session, so a debit, a credit and the ledger append either all
// commit or all roll back.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	BankRepository() (BankRepository, error)
	BranchRepository() (BranchRepository, error)
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
