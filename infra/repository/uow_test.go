package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	infrarepo "github.com/zenbank/banking/infra/repository"
	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestDoCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	uow := infrarepo.NewUoW(db)
	accountID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "balance"`).
		WithArgs(int64(500), sqlmock.AnyArg(), accountID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		accounts, err := u.AccountRepository()
		if err != nil {
			return err
		}
		return accounts.UpdateBalance(context.Background(), accountID, 500)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := infrarepo.NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdateLocksTheRow(t *testing.T) {
	db, mock := newMockDB(t)
	uow := infrarepo.NewUoW(db)
	accountID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "bank_id", "branch_id", "balance"}).
			AddRow(accountID, userID, uuid.New(), uuid.New(), int64(1000)))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		accounts, err := u.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetForUpdate(context.Background(), accountID)
		if err != nil {
			return err
		}
		assert.Equal(t, accountID, a.ID)
		assert.Equal(t, int64(1000), a.Balance)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReturnsNilWhenAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	uow := infrarepo.NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		accounts, err := u.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(context.Background(), uuid.New())
		if err != nil {
			return err
		}
		assert.Nil(t, a, "Absent rows should map to nil, nil")
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerLookupFiltersByCaller(t *testing.T) {
	db, mock := newMockDB(t)
	uow := infrarepo.NewUoW(db)
	callerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE caller_user_id = .+ AND idempotency_key = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		ledger, err := u.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err := ledger.GetByIdempotencyKey(context.Background(), callerID, "retry-abc")
		if err != nil {
			return err
		}
		assert.Nil(t, tx, "Another caller's key must not resolve")
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerCreateMapsDuplicateKeyToConflict(t *testing.T) {
	db, mock := newMockDB(t)
	uow := infrarepo.NewUoW(db)
	receiverID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(u repository.UnitOfWork) error {
		ledger, err := u.TransactionRepository()
		if err != nil {
			return err
		}
		return ledger.Create(context.Background(), dto.TransactionCreate{
			ID:                uuid.New(),
			CallerUserID:      uuid.New(),
			Kind:              "deposit",
			Amount:            100,
			ReceiverAccountID: &receiverID,
			IdempotencyKey:    "retry-abc",
		})
	})
	assert.ErrorIs(t, err, account.ErrIdempotencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryAccessOutsideDo(t *testing.T) {
	db, _ := newMockDB(t)
	uow := infrarepo.NewUoW(db)

	_, err := uow.AccountRepository()
	assert.ErrorIs(t, err, infrarepo.ErrNoTransaction)
}
