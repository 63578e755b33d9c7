// Package transaction implements the authorization and execution logic
// for money movements. Every requested deposit, withdrawal or transfer
// passes through Execute, which re-validates the request, checks
// ownership against the account directory, enforces the no-overdraft
// rule, and atomically applies the balance change together with the
// ledger append. Transport-layer validation is not trusted.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

// Service is the transaction authorization engine.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Execute validates the requested money movement on behalf of
// callerUserID and, if every check passes, applies it atomically:
// balance changes and the ledger record commit together or not at all.
//
// Checks run in a fixed order: kind, amount, required account ids
// (transfer sender and receiver must differ), account resolution,
// ownership, funds sufficiency. Ownership is asymmetric for transfers:
// only the sender account must belong to the caller.
//
// Accounts are read under row-level locks for the duration of the unit
// of work, so two concurrent withdrawals cannot both pass the funds
// check against a stale balance. Transfers lock their two accounts in
// ascending id order to avoid deadlock.
//
// If cmd carries an idempotency key the caller has already recorded,
// the recorded transaction is returned unchanged and nothing is
// applied twice. Keys are scoped per caller, so presenting someone
// else's key neither replays nor leaks their record.
func (s *Service) Execute(
	ctx context.Context,
	callerUserID uuid.UUID,
	cmd dto.TransactionCommand,
) (rec *dto.TransactionRead, err error) {
	kind, err := account.ParseKind(cmd.Kind)
	if err != nil {
		return nil, err
	}
	if cmd.Amount <= 0 {
		return nil, account.ErrTransactionAmountMustBePositive
	}

	logger := s.logger.With(
		"kind", string(kind),
		"callerUserID", callerUserID,
		"amount", cmd.Amount,
	)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		if cmd.IdempotencyKey != "" {
			existing, err := ledger.GetByIdempotencyKey(ctx, callerUserID, cmd.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				logger.Info("transaction replayed from idempotency key", "transactionID", existing.ID)
				rec = existing
				return nil
			}
		}

		switch kind {
		case account.KindDeposit:
			rec, err = s.deposit(ctx, accounts, ledger, callerUserID, cmd)
		case account.KindWithdraw:
			rec, err = s.withdraw(ctx, accounts, ledger, callerUserID, cmd)
		case account.KindTransfer:
			rec, err = s.transfer(ctx, accounts, ledger, callerUserID, cmd)
		}
		return err
	})
	if err != nil {
		logger.Error("transaction rejected", "error", err)
		return nil, err
	}
	logger.Info("transaction recorded", "transactionID", rec.ID)
	return rec, nil
}

func (s *Service) deposit(
	ctx context.Context,
	accounts repository.AccountRepository,
	ledger repository.TransactionRepository,
	callerUserID uuid.UUID,
	cmd dto.TransactionCommand,
) (*dto.TransactionRead, error) {
	if cmd.ReceiverAccountID == nil {
		return nil, account.ErrMissingReceiverAccount
	}
	receiver, err := lockAccount(ctx, accounts, *cmd.ReceiverAccountID, "receiver")
	if err != nil {
		return nil, err
	}
	if err = receiver.ValidateDeposit(callerUserID, cmd.Amount); err != nil {
		return nil, err
	}
	tx, err := account.NewTransaction(
		account.KindDeposit, cmd.Amount, nil, cmd.ReceiverAccountID, cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if err = accounts.UpdateBalance(ctx, receiver.ID, receiver.Balance+cmd.Amount); err != nil {
		return nil, err
	}
	return record(ctx, ledger, callerUserID, tx)
}

func (s *Service) withdraw(
	ctx context.Context,
	accounts repository.AccountRepository,
	ledger repository.TransactionRepository,
	callerUserID uuid.UUID,
	cmd dto.TransactionCommand,
) (*dto.TransactionRead, error) {
	if cmd.SenderAccountID == nil {
		return nil, account.ErrMissingSenderAccount
	}
	sender, err := lockAccount(ctx, accounts, *cmd.SenderAccountID, "sender")
	if err != nil {
		return nil, err
	}
	if err = sender.ValidateWithdraw(callerUserID, cmd.Amount); err != nil {
		return nil, err
	}
	tx, err := account.NewTransaction(
		account.KindWithdraw, cmd.Amount, cmd.SenderAccountID, nil, cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if err = accounts.UpdateBalance(ctx, sender.ID, sender.Balance-cmd.Amount); err != nil {
		return nil, err
	}
	return record(ctx, ledger, callerUserID, tx)
}

func (s *Service) transfer(
	ctx context.Context,
	accounts repository.AccountRepository,
	ledger repository.TransactionRepository,
	callerUserID uuid.UUID,
	cmd dto.TransactionCommand,
) (*dto.TransactionRead, error) {
	if cmd.SenderAccountID == nil {
		return nil, account.ErrMissingSenderAccount
	}
	if cmd.ReceiverAccountID == nil {
		return nil, account.ErrMissingReceiverAccount
	}
	senderID, receiverID := *cmd.SenderAccountID, *cmd.ReceiverAccountID
	if senderID == receiverID {
		return nil, account.ErrCannotTransferToSameAccount
	}

	// Lock both rows in ascending id order, never in request order,
	// so two opposing transfers cannot deadlock.
	first, second := senderID, receiverID
	if strings.Compare(receiverID.String(), senderID.String()) < 0 {
		first, second = receiverID, senderID
	}
	locked := make(map[uuid.UUID]*account.Account, 2)
	for _, id := range []uuid.UUID{first, second} {
		role := "sender"
		if id == receiverID {
			role = "receiver"
		}
		a, err := lockAccount(ctx, accounts, id, role)
		if err != nil {
			return nil, err
		}
		locked[id] = a
	}
	sender, receiver := locked[senderID], locked[receiverID]

	if err := sender.ValidateTransfer(callerUserID, receiver, cmd.Amount); err != nil {
		return nil, err
	}
	tx, err := account.NewTransaction(
		account.KindTransfer, cmd.Amount, cmd.SenderAccountID, cmd.ReceiverAccountID, cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if err = accounts.UpdateBalance(ctx, sender.ID, sender.Balance-cmd.Amount); err != nil {
		return nil, err
	}
	if err = accounts.UpdateBalance(ctx, receiver.ID, receiver.Balance+cmd.Amount); err != nil {
		return nil, err
	}
	return record(ctx, ledger, callerUserID, tx)
}

// ListForAccount returns the ledger records referencing accountID,
// newest first. The account must exist and belong to callerUserID.
func (s *Service) ListForAccount(
	ctx context.Context,
	callerUserID, accountID uuid.UUID,
) (txs []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
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
		txs, err = ledger.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// lockAccount resolves id under a row lock and hydrates the aggregate.
// role names the account's part in the request so that a missing
// sender and a missing receiver stay distinguishable to the caller.
func lockAccount(
	ctx context.Context,
	accounts repository.AccountRepository,
	id uuid.UUID,
	role string,
) (*account.Account, error) {
	view, err := accounts.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("%s %w", role, account.ErrAccountNotFound)
	}
	return account.New().
		WithID(view.ID).
		WithUserID(view.UserID).
		WithBankID(view.BankID).
		WithBranchID(view.BranchID).
		WithBalance(view.Balance).
		WithCreatedAt(view.CreatedAt).
		Build()
}

func record(
	ctx context.Context,
	ledger repository.TransactionRepository,
	callerUserID uuid.UUID,
	tx *account.Transaction,
) (*dto.TransactionRead, error) {
	if err := ledger.Create(ctx, dto.TransactionCreate{
		ID:                tx.ID,
		CallerUserID:      callerUserID,
		Kind:              string(tx.Kind),
		Amount:            tx.Amount,
		SenderAccountID:   tx.SenderAccountID,
		ReceiverAccountID: tx.ReceiverAccountID,
		IdempotencyKey:    tx.IdempotencyKey,
		CreatedAt:         tx.CreatedAt,
	}); err != nil {
		return nil, err
	}
	return &dto.TransactionRead{
		ID:                tx.ID,
		Kind:              string(tx.Kind),
		Amount:            tx.Amount,
		SenderAccountID:   tx.SenderAccountID,
		ReceiverAccountID: tx.ReceiverAccountID,
		CreatedAt:         tx.CreatedAt,
	}, nil
}
