package account_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainaccount "github.com/zenbank/banking/pkg/domain/account"
)

func TestParseKind(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"deposit", "withdraw", "transfer"} {
		kind, err := domainaccount.ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(kind))
	}

	for _, s := range []string{"", "DEPOSIT", "Deposit", "payment", "withdrawal"} {
		_, err := domainaccount.ParseKind(s)
		assert.ErrorIs(t, err, domainaccount.ErrInvalidTransactionKind, "kind %q should be rejected", s)
	}
}

func TestNewTransaction(t *testing.T) {
	t.Parallel()
	sender := uuid.New()
	receiver := uuid.New()

	t.Run("deposit drops the sender side", func(t *testing.T) {
		tx, err := domainaccount.NewTransaction(domainaccount.KindDeposit, 100, &sender, &receiver, "")
		require.NoError(t, err)
		assert.Nil(t, tx.SenderAccountID)
		require.NotNil(t, tx.ReceiverAccountID)
		assert.Equal(t, receiver, *tx.ReceiverAccountID)
	})

	t.Run("deposit requires a receiver", func(t *testing.T) {
		_, err := domainaccount.NewTransaction(domainaccount.KindDeposit, 100, nil, nil, "")
		assert.ErrorIs(t, err, domainaccount.ErrMissingReceiverAccount)
	})

	t.Run("withdraw drops the receiver side", func(t *testing.T) {
		tx, err := domainaccount.NewTransaction(domainaccount.KindWithdraw, 100, &sender, &receiver, "")
		require.NoError(t, err)
		assert.Nil(t, tx.ReceiverAccountID)
		require.NotNil(t, tx.SenderAccountID)
		assert.Equal(t, sender, *tx.SenderAccountID)
	})

	t.Run("withdraw requires a sender", func(t *testing.T) {
		_, err := domainaccount.NewTransaction(domainaccount.KindWithdraw, 100, nil, &receiver, "")
		assert.ErrorIs(t, err, domainaccount.ErrMissingSenderAccount)
	})

	t.Run("transfer requires both sides", func(t *testing.T) {
		_, err := domainaccount.NewTransaction(domainaccount.KindTransfer, 100, nil, &receiver, "")
		assert.ErrorIs(t, err, domainaccount.ErrMissingSenderAccount)

		_, err = domainaccount.NewTransaction(domainaccount.KindTransfer, 100, &sender, nil, "")
		assert.ErrorIs(t, err, domainaccount.ErrMissingReceiverAccount)
	})

	t.Run("transfer between distinct accounts", func(t *testing.T) {
		tx, err := domainaccount.NewTransaction(domainaccount.KindTransfer, 100, &sender, &receiver, "key-1")
		require.NoError(t, err)
		assert.Equal(t, sender, *tx.SenderAccountID)
		assert.Equal(t, receiver, *tx.ReceiverAccountID)
		assert.Equal(t, "key-1", tx.IdempotencyKey)
	})

	t.Run("transfer to the same account", func(t *testing.T) {
		_, err := domainaccount.NewTransaction(domainaccount.KindTransfer, 100, &sender, &sender, "")
		assert.ErrorIs(t, err, domainaccount.ErrCannotTransferToSameAccount)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := domainaccount.NewTransaction(domainaccount.KindDeposit, 0, nil, &receiver, "")
		assert.ErrorIs(t, err, domainaccount.ErrTransactionAmountMustBePositive)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := domainaccount.NewTransaction(domainaccount.Kind("payment"), 100, &sender, &receiver, "")
		assert.ErrorIs(t, err, domainaccount.ErrInvalidTransactionKind)
	})
}
