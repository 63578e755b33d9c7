package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTransactionAmountMustBePositive is returned when a transaction amount is not positive.
	ErrTransactionAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInsufficientFunds is returned when an account has insufficient funds for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists is returned when a user already holds an account at the same bank.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted from an account to itself.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")

	// ErrNilAccount is returned when a nil account is provided to a transfer or other operation.
	ErrNilAccount = errors.New("nil account")

	// ErrNotOwner is returned when a user attempts to perform an action on an account they do not own.
	ErrNotOwner = errors.New("not owner")
)

// Account represents a user's balance-holding record at a bank branch.
// It acts as an aggregate root: all money movement is validated here
// before any persistence happens.
//
// Invariants:
//   - An account has exactly one owner (UserID).
//   - Balance is kept in the smallest currency unit and is never negative.
//   - Balance changes only through successful transactions.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BankID    uuid.UUID
	BranchID  uuid.UUID
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances,
// so that only valid accounts can be built.
type Builder struct {
	id        uuid.UUID
	userID    uuid.UUID
	bankID    uuid.UUID
	branchID  uuid.UUID
	balance   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Builder with a fresh ID and zero balance.
func New() *Builder {
	return &Builder{id: uuid.New(), createdAt: time.Now().UTC()}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithBankID sets the bank the account is held at. Mandatory.
func (b *Builder) WithBankID(bankID uuid.UUID) *Builder {
	b.bankID = bankID
	return b
}

// WithBranchID sets the branch the account was opened under. Mandatory.
func (b *Builder) WithBranchID(branchID uuid.UUID) *Builder {
	b.branchID = branchID
	return b
}

// WithBalance sets the balance. This should only be used for hydrating
// an existing account from a data store or for test setup.
func (b *Builder) WithBalance(balance int64) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if b.bankID == uuid.Nil {
		return nil, errors.New("bankID is required")
	}
	if b.branchID == uuid.Nil {
		return nil, errors.New("branchID is required")
	}
	if b.balance < 0 {
		return nil, errors.New("balance cannot be negative")
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		BankID:    b.bankID,
		BranchID:  b.branchID,
		Balance:   b.balance,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// validateOwner checks that the caller owns this account.
func (a *Account) validateOwner(userID uuid.UUID) error {
	if a.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return ErrTransactionAmountMustBePositive
	}
	return nil
}

// ValidateDeposit checks all business invariants for a deposit into
// this account on behalf of userID.
func (a *Account) ValidateDeposit(userID uuid.UUID, amount int64) error {
	if err := a.validateOwner(userID); err != nil {
		return err
	}
	return validateAmount(amount)
}

// ValidateWithdraw checks all business invariants for a withdrawal.
// Invariants enforced:
//   - Only the account owner can withdraw.
//   - Withdrawal amount must be positive.
//   - Cannot withdraw more than the current balance.
func (a *Account) ValidateWithdraw(userID uuid.UUID, amount int64) error {
	if err := a.validateOwner(userID); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateTransfer checks that a funds transfer from this account to
// dest is valid. Only the sender side is ownership-checked: a caller
// may push funds to any account but may only pull from their own.
func (a *Account) ValidateTransfer(senderUserID uuid.UUID, dest *Account, amount int64) error {
	if a == nil || dest == nil {
		return ErrNilAccount
	}
	if a.ID == dest.ID {
		return ErrCannotTransferToSameAccount
	}
	if err := a.validateOwner(senderUserID); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}
