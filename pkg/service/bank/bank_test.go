package bank_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbank "github.com/zenbank/banking/pkg/domain/bank"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/service/bank"
	"github.com/zenbank/banking/pkg/testutils"
)

func newService(uow *testutils.MemoryUoW) *bank.Service {
	return bank.New(uow, testutils.DiscardLogger())
}

func TestBankLifecycle(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)

	b, err := svc.CreateBank(context.Background(), "First National")
	require.NoError(t, err)
	assert.Equal(t, "First National", b.Name)

	require.NoError(t, svc.RenameBank(context.Background(), b.ID, "First International"))

	banks, err := svc.ListBanks(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, "First International", banks[0].Name)

	require.NoError(t, svc.DeleteBank(context.Background(), b.ID))
	banks, err = svc.ListBanks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, banks)

	t.Run("unknown bank", func(t *testing.T) {
		err := svc.RenameBank(context.Background(), uuid.New(), "Ghost")
		assert.ErrorIs(t, err, domainbank.ErrBankNotFound)
		err = svc.DeleteBank(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domainbank.ErrBankNotFound)
	})
}

func TestBranchLifecycle(t *testing.T) {
	t.Parallel()
	uow := testutils.NewMemoryUoW()
	svc := newService(uow)

	b, err := svc.CreateBank(context.Background(), "First National")
	require.NoError(t, err)

	br, err := svc.CreateBranch(context.Background(), "Downtown", "1 Main St", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, br.BankID)

	newName := "Midtown"
	require.NoError(t, svc.UpdateBranch(context.Background(), br.ID, dto.BranchUpdate{Name: &newName}))

	branches, err := svc.ListBranches(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, "Midtown", branches[0].Name)
	assert.Equal(t, "1 Main St", branches[0].Address, "Unset fields must be left alone")

	require.NoError(t, svc.DeleteBranch(context.Background(), br.ID))
	branches, err = svc.ListBranches(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, branches)

	t.Run("branch under unknown bank", func(t *testing.T) {
		_, err := svc.CreateBranch(context.Background(), "Nowhere", "", uuid.New())
		assert.ErrorIs(t, err, domainbank.ErrBankNotFound)
	})

	t.Run("unknown branch", func(t *testing.T) {
		err := svc.UpdateBranch(context.Background(), uuid.New(), dto.BranchUpdate{Name: &newName})
		assert.ErrorIs(t, err, domainbank.ErrBranchNotFound)
		err = svc.DeleteBranch(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domainbank.ErrBranchNotFound)
	})

	t.Run("branches of unknown bank", func(t *testing.T) {
		_, err := svc.ListBranches(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domainbank.ErrBankNotFound)
	})
}
