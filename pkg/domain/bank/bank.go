// Package bank holds the administrative entities of the directory:
// banks and the branches accounts are opened under.
package bank

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBankNotFound is returned when a bank cannot be found.
	ErrBankNotFound = errors.New("bank not found")
	// ErrBranchNotFound is returned when a branch cannot be found.
	ErrBranchNotFound = errors.New("branch not found")
)

// Bank is a financial institution accounts belong to.
type Bank struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a Bank with the given name.
func New(name string) (*Bank, error) {
	if name == "" {
		return nil, errors.New("bank name cannot be empty")
	}
	now := time.Now().UTC()
	return &Bank{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// Branch is a physical branch of a bank.
type Branch struct {
	ID        uuid.UUID
	Name      string
	Address   string
	BankID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBranch creates a Branch under the given bank.
func NewBranch(name, address string, bankID uuid.UUID) (*Branch, error) {
	if name == "" {
		return nil, errors.New("branch name cannot be empty")
	}
	if bankID == uuid.Nil {
		return nil, errors.New("bankID is required")
	}
	now := time.Now().UTC()
	return &Branch{
		ID:        uuid.New(),
		Name:      name,
		Address:   address,
		BankID:    bankID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
