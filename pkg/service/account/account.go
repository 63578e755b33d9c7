// Package account provides business logic for opening accounts and
// reading balances. Money movement lives in the transaction service.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/domain/bank"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

// Service provides business logic for account operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Open creates a new zero-balance account for userID at the given
// branch. The branch must exist and belong to bankID, and a user can
// hold at most one account per bank.
func (s *Service) Open(
	ctx context.Context,
	userID, bankID, branchID uuid.UUID,
) (a *dto.AccountRead, err error) {
	logger := s.logger.With("userID", userID, "bankID", bankID, "branchID", branchID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		branches, err := uow.BranchRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		branch, err := branches.Get(ctx, branchID)
		if err != nil {
			return err
		}
		if branch == nil || branch.BankID != bankID {
			return bank.ErrBranchNotFound
		}
		existing, err := accounts.GetByUserAndBank(ctx, userID, bankID)
		if err != nil {
			return err
		}
		if existing != nil {
			return account.ErrAccountAlreadyExists
		}
		acct, err := account.New().
			WithUserID(userID).
			WithBankID(bankID).
			WithBranchID(branchID).
			Build()
		if err != nil {
			return err
		}
		if err = accounts.Create(ctx, dto.AccountCreate{
			ID:       acct.ID,
			UserID:   acct.UserID,
			BankID:   acct.BankID,
			BranchID: acct.BranchID,
			Balance:  acct.Balance,
		}); err != nil {
			return err
		}
		a, err = accounts.Get(ctx, acct.ID)
		return err
	})
	if err != nil {
		logger.Error("account opening failed", "error", err)
		return nil, err
	}
	logger.Info("account opened", "accountID", a.ID)
	return a, nil
}

// ListForUser returns every account owned by userID.
func (s *Service) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) (accts []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err = accounts.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accts, nil
}

// Balance returns the balance of accountID. The account must exist and
// belong to callerUserID.
func (s *Service) Balance(
	ctx context.Context,
	callerUserID, accountID uuid.UUID,
) (balance int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		view, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if view == nil {
			return account.ErrAccountNotFound
		}
		if view.UserID != callerUserID {
			return account.ErrNotOwner
		}
		balance = view.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
