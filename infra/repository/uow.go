package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zenbank/banking/pkg/repository"
)

// ErrNoTransaction is returned when a repository accessor is called
// outside a Do block.
var ErrNoTransaction = errors.New("repository access outside a unit of work")

// UoW provides a transaction boundary and repository access in one
// abstraction. All repositories obtained inside Do share the session of
// the surrounding database transaction, so row locks taken by one
// repository are visible to the others and everything commits or rolls
// back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction, passing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() (*gorm.DB, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return u.tx, nil
}

// UserRepository returns a UserRepository bound to the transaction.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewUserRepository(tx), nil
}

// BankRepository returns a BankRepository bound to the transaction.
func (u *UoW) BankRepository() (repository.BankRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewBankRepository(tx), nil
}

// BranchRepository returns a BranchRepository bound to the transaction.
func (u *UoW) BranchRepository() (repository.BranchRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewBranchRepository(tx), nil
}

// AccountRepository returns an AccountRepository bound to the
// transaction.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewAccountRepository(tx), nil
}

// TransactionRepository returns a TransactionRepository bound to the
// transaction.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewTransactionRepository(tx), nil
}
