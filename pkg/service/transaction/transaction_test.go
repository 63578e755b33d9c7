package transaction_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/service/transaction"
	"github.com/zenbank/banking/pkg/testutils"
)

func newService(uow *testutils.MemoryUoW) *transaction.Service {
	return transaction.New(uow, testutils.DiscardLogger())
}

func TestExecuteDeposit(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 0)

	rec, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
		Kind:              "deposit",
		Amount:            10000,
		ReceiverAccountID: &accountID,
	})
	require.NoError(t, err)
	assert.Equal(t, "deposit", rec.Kind)
	assert.Nil(t, rec.SenderAccountID, "Deposit should not record a sender")
	require.NotNil(t, rec.ReceiverAccountID)
	assert.Equal(t, accountID, *rec.ReceiverAccountID)
	assert.Equal(t, int64(10000), uow.Balance(accountID))
	assert.Equal(t, 1, uow.LedgerSize())
}

func TestExecuteDepositRejections(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 0)

	t.Run("missing receiver", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:   "deposit",
			Amount: 100,
		})
		assert.ErrorIs(t, err, account.ErrMissingReceiverAccount)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		unknown := uuid.New()
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:              "deposit",
			Amount:            100,
			ReceiverAccountID: &unknown,
		})
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		assert.Contains(t, err.Error(), "receiver")
	})

	t.Run("not owner", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), uuid.New(), dto.TransactionCommand{
			Kind:              "deposit",
			Amount:            100,
			ReceiverAccountID: &accountID,
		})
		assert.ErrorIs(t, err, account.ErrNotOwner)
	})

	assert.Zero(t, uow.Balance(accountID), "Rejected deposits must not move money")
	assert.Zero(t, uow.LedgerSize(), "Rejected deposits must not reach the ledger")
}

func TestExecuteWithdraw(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 10000)

	rec, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
		Kind:            "withdraw",
		Amount:          3000,
		SenderAccountID: &accountID,
	})
	require.NoError(t, err)
	assert.Equal(t, "withdraw", rec.Kind)
	assert.Nil(t, rec.ReceiverAccountID, "Withdrawal should not record a receiver")
	assert.Equal(t, int64(7000), uow.Balance(accountID))

	t.Run("insufficient funds", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:            "withdraw",
			Amount:          7001,
			SenderAccountID: &accountID,
		})
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Equal(t, int64(7000), uow.Balance(accountID), "Failed withdrawal must not change the balance")
	})

	t.Run("whole balance", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:            "withdraw",
			Amount:          7000,
			SenderAccountID: &accountID,
		})
		require.NoError(t, err)
		assert.Zero(t, uow.Balance(accountID))
	})

	t.Run("missing sender", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:   "withdraw",
			Amount: 100,
		})
		assert.ErrorIs(t, err, account.ErrMissingSenderAccount)
	})

	t.Run("not owner", func(t *testing.T) {
		otherAccount := uow.SeedAccount(uuid.New(), 5000)
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:            "withdraw",
			Amount:          100,
			SenderAccountID: &otherAccount,
		})
		assert.ErrorIs(t, err, account.ErrNotOwner)
		assert.Equal(t, int64(5000), uow.Balance(otherAccount))
	})
}

func TestExecuteRejectsBadShape(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 1000)

	_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
		Kind:              "payment",
		Amount:            100,
		ReceiverAccountID: &accountID,
	})
	assert.ErrorIs(t, err, account.ErrInvalidTransactionKind)

	for _, amount := range []int64{0, -100} {
		_, err = svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:              "deposit",
			Amount:            amount,
			ReceiverAccountID: &accountID,
		})
		assert.ErrorIs(t, err, account.ErrTransactionAmountMustBePositive, "amount %d should be rejected", amount)
	}
	assert.Zero(t, uow.LedgerSize())
}

func TestExecuteTransfer(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	senderUserID := uuid.New()
	senderID := uow.SeedAccount(senderUserID, 10000)
	receiverID := uow.SeedAccount(uuid.New(), 500)

	rec, err := svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
		Kind:              "transfer",
		Amount:            4000,
		SenderAccountID:   &senderID,
		ReceiverAccountID: &receiverID,
	})
	require.NoError(t, err)
	assert.Equal(t, "transfer", rec.Kind)
	assert.Equal(t, int64(6000), uow.Balance(senderID))
	assert.Equal(t, int64(4500), uow.Balance(receiverID),
		"Receiver owned by another user must still be creditable")
	assert.Equal(t, 1, uow.LedgerSize())
}

func TestExecuteTransferRejections(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	senderUserID := uuid.New()
	senderID := uow.SeedAccount(senderUserID, 1000)
	receiverID := uow.SeedAccount(uuid.New(), 0)

	t.Run("same account", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
			Kind:              "transfer",
			Amount:            100,
			SenderAccountID:   &senderID,
			ReceiverAccountID: &senderID,
		})
		assert.ErrorIs(t, err, account.ErrCannotTransferToSameAccount)
	})

	t.Run("sender not owned by caller", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), uuid.New(), dto.TransactionCommand{
			Kind:              "transfer",
			Amount:            100,
			SenderAccountID:   &senderID,
			ReceiverAccountID: &receiverID,
		})
		assert.ErrorIs(t, err, account.ErrNotOwner)
	})

	t.Run("missing account ids", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
			Kind:              "transfer",
			Amount:            100,
			ReceiverAccountID: &receiverID,
		})
		assert.ErrorIs(t, err, account.ErrMissingSenderAccount)

		_, err = svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
			Kind:            "transfer",
			Amount:          100,
			SenderAccountID: &senderID,
		})
		assert.ErrorIs(t, err, account.ErrMissingReceiverAccount)
	})

	t.Run("unknown sender and receiver are distinguishable", func(t *testing.T) {
		unknown := uuid.New()
		_, err := svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
			Kind:              "transfer",
			Amount:            100,
			SenderAccountID:   &unknown,
			ReceiverAccountID: &receiverID,
		})
		require.ErrorIs(t, err, account.ErrAccountNotFound)
		assert.Contains(t, err.Error(), "sender")

		_, err = svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
			Kind:              "transfer",
			Amount:            100,
			SenderAccountID:   &senderID,
			ReceiverAccountID: &unknown,
		})
		require.ErrorIs(t, err, account.ErrAccountNotFound)
		assert.Contains(t, err.Error(), "receiver")
	})

	t.Run("insufficient funds", func(t *testing.T) {
		_, err := svc.Execute(context.Background(), senderUserID, dto.TransactionCommand{
			Kind:              "transfer",
			Amount:            1001,
			SenderAccountID:   &senderID,
			ReceiverAccountID: &receiverID,
		})
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	})

	assert.Equal(t, int64(1000), uow.Balance(senderID), "Rejected transfers must not move money")
	assert.Zero(t, uow.Balance(receiverID))
	assert.Zero(t, uow.LedgerSize())
}

func TestExecuteIdempotency(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 0)

	cmd := dto.TransactionCommand{
		Kind:              "deposit",
		Amount:            5000,
		ReceiverAccountID: &accountID,
		IdempotencyKey:    "retry-abc",
	}

	first, err := svc.Execute(context.Background(), userID, cmd)
	require.NoError(t, err)

	second, err := svc.Execute(context.Background(), userID, cmd)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "Replay should return the recorded transaction")
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "Replay should carry the recorded timestamp")
	assert.Equal(t, int64(5000), uow.Balance(accountID), "Replay must not apply the deposit twice")
	assert.Equal(t, 1, uow.LedgerSize())

	txs, err := svc.ListForAccount(context.Background(), userID, accountID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, first.CreatedAt, txs[0].CreatedAt, "Listing should agree with the execute response")
}

func TestExecuteIdempotencyKeyScopedToCaller(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	otherUserID := uuid.New()
	accountID := uow.SeedAccount(userID, 0)
	otherAccountID := uow.SeedAccount(otherUserID, 0)

	first, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
		Kind:              "deposit",
		Amount:            5000,
		ReceiverAccountID: &accountID,
		IdempotencyKey:    "shared-key",
	})
	require.NoError(t, err)

	rec, err := svc.Execute(context.Background(), otherUserID, dto.TransactionCommand{
		Kind:              "deposit",
		Amount:            100,
		ReceiverAccountID: &otherAccountID,
		IdempotencyKey:    "shared-key",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, rec.ID, "Another caller's key must not resolve to the recorded transaction")
	require.NotNil(t, rec.ReceiverAccountID)
	assert.Equal(t, otherAccountID, *rec.ReceiverAccountID, "The second caller must get their own record back")
	assert.Equal(t, int64(100), uow.Balance(otherAccountID), "The second caller's deposit must be applied")
	assert.Equal(t, int64(5000), uow.Balance(accountID))
	assert.Equal(t, 2, uow.LedgerSize())

	replay, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
		Kind:              "deposit",
		Amount:            5000,
		ReceiverAccountID: &accountID,
		IdempotencyKey:    "shared-key",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID, "The original caller still replays cleanly")
	assert.Equal(t, 2, uow.LedgerSize())
}

func TestExecuteConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 100)

	const workers = 10
	const amount = 30

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
				Kind:            "withdraw",
				Amount:          amount,
				SenderAccountID: &accountID,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		}
	}

	assert.Equal(t, 3, succeeded, "Only three withdrawals of 30 fit into a balance of 100")
	assert.Equal(t, int64(100-amount*3), uow.Balance(accountID))
	assert.GreaterOrEqual(t, uow.Balance(accountID), int64(0), "Balance must never go negative")
	assert.Equal(t, succeeded, uow.LedgerSize())
}

func TestExecuteStorageFailure(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	uow.Err = errors.New("connection reset")
	svc := newService(uow)
	userID := uuid.New()
	accountID := uuid.New()

	_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
		Kind:              "deposit",
		Amount:            100,
		ReceiverAccountID: &accountID,
	})
	assert.ErrorContains(t, err, "connection reset")
}

func TestListForAccount(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)
	userID := uuid.New()
	accountID := uow.SeedAccount(userID, 0)

	for _, amount := range []int64{100, 200, 300} {
		_, err := svc.Execute(context.Background(), userID, dto.TransactionCommand{
			Kind:              "deposit",
			Amount:            amount,
			ReceiverAccountID: &accountID,
		})
		require.NoError(t, err)
	}

	txs, err := svc.ListForAccount(context.Background(), userID, accountID)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, int64(300), txs[0].Amount, "History should be newest first")
	assert.Equal(t, int64(100), txs[2].Amount)

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.ListForAccount(context.Background(), userID, uuid.New())
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		_, err := svc.ListForAccount(context.Background(), uuid.New(), accountID)
		assert.ErrorIs(t, err, account.ErrNotOwner)
	})
}
