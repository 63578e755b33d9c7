package account_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainaccount "github.com/zenbank/banking/pkg/domain/account"
)

func buildAccount(t *testing.T, userID uuid.UUID, balance int64) *domainaccount.Account {
	t.Helper()
	acc, err := domainaccount.New().
		WithUserID(userID).
		WithBankID(uuid.New()).
		WithBranchID(uuid.New()).
		WithBalance(balance).
		Build()
	require.NoError(t, err)
	return acc
}

func TestBuild(t *testing.T) {
	t.Parallel()
	acc := buildAccount(t, uuid.New(), 0)
	assert.NotEmpty(t, acc.ID, "Account ID should not be empty")
	assert.Zero(t, acc.Balance, "New account should start at zero balance")
}

func TestBuildMissingFields(t *testing.T) {
	t.Parallel()
	_, err := domainaccount.New().WithBankID(uuid.New()).WithBranchID(uuid.New()).Build()
	assert.Error(t, err, "Account without an owner should not build")

	_, err = domainaccount.New().WithUserID(uuid.New()).WithBranchID(uuid.New()).Build()
	assert.Error(t, err, "Account without a bank should not build")

	_, err = domainaccount.New().
		WithUserID(uuid.New()).
		WithBankID(uuid.New()).
		WithBranchID(uuid.New()).
		WithBalance(-1).
		Build()
	assert.Error(t, err, "Negative balance should not build")
}

func TestValidateDeposit(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	acc := buildAccount(t, userID, 0)

	t.Run("successful deposit", func(t *testing.T) {
		assert.NoError(t, acc.ValidateDeposit(userID, 100))
	})

	t.Run("unauthorized deposit", func(t *testing.T) {
		err := acc.ValidateDeposit(uuid.New(), 100)
		assert.ErrorIs(t, err, domainaccount.ErrNotOwner)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		err := acc.ValidateDeposit(userID, 0)
		assert.ErrorIs(t, err, domainaccount.ErrTransactionAmountMustBePositive)
		err = acc.ValidateDeposit(userID, -100)
		assert.ErrorIs(t, err, domainaccount.ErrTransactionAmountMustBePositive)
	})
}

func TestValidateWithdraw(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	acc := buildAccount(t, userID, 10000)

	t.Run("successful withdrawal", func(t *testing.T) {
		assert.NoError(t, acc.ValidateWithdraw(userID, 5000))
	})

	t.Run("whole balance withdrawal", func(t *testing.T) {
		assert.NoError(t, acc.ValidateWithdraw(userID, 10000), "Withdrawing exactly the balance should pass")
	})

	t.Run("unauthorized withdrawal", func(t *testing.T) {
		err := acc.ValidateWithdraw(uuid.New(), 5000)
		assert.ErrorIs(t, err, domainaccount.ErrNotOwner)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := acc.ValidateWithdraw(userID, 10001)
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		err := acc.ValidateWithdraw(userID, 0)
		assert.ErrorIs(t, err, domainaccount.ErrTransactionAmountMustBePositive)
	})
}

func TestValidateTransfer(t *testing.T) {
	t.Parallel()
	senderUserID := uuid.New()
	sender := buildAccount(t, senderUserID, 10000)
	receiver := buildAccount(t, uuid.New(), 0)

	t.Run("successful transfer", func(t *testing.T) {
		assert.NoError(t, sender.ValidateTransfer(senderUserID, receiver, 5000))
	})

	t.Run("receiver owned by someone else is allowed", func(t *testing.T) {
		assert.NoError(t, sender.ValidateTransfer(senderUserID, receiver, 100),
			"Only the sender side is ownership-checked")
	})

	t.Run("sender not owned by caller", func(t *testing.T) {
		err := sender.ValidateTransfer(uuid.New(), receiver, 100)
		assert.ErrorIs(t, err, domainaccount.ErrNotOwner)
	})

	t.Run("same account", func(t *testing.T) {
		err := sender.ValidateTransfer(senderUserID, sender, 100)
		assert.ErrorIs(t, err, domainaccount.ErrCannotTransferToSameAccount)
	})

	t.Run("nil destination", func(t *testing.T) {
		err := sender.ValidateTransfer(senderUserID, nil, 100)
		assert.ErrorIs(t, err, domainaccount.ErrNilAccount)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := sender.ValidateTransfer(senderUserID, receiver, 10001)
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		err := sender.ValidateTransfer(senderUserID, receiver, 0)
		assert.ErrorIs(t, err, domainaccount.ErrTransactionAmountMustBePositive)
	})
}
