package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns a GORM-backed TransactionRepository.
// The ledger is append-only: there is no update or delete.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	model := Transaction{
		ID:                create.ID,
		CallerUserID:      create.CallerUserID,
		Kind:              create.Kind,
		Amount:            create.Amount,
		SenderAccountID:   create.SenderAccountID,
		ReceiverAccountID: create.ReceiverAccountID,
		CreatedAt:         create.CreatedAt,
	}
	if create.IdempotencyKey != "" {
		key := create.IdempotencyKey
		model.IdempotencyKey = &key
	}
	err := r.db.WithContext(ctx).Create(&model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) && model.IdempotencyKey != nil {
		return account.ErrIdempotencyConflict
	}
	return err
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var model Transaction
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return transactionToRead(&model), nil
}

func (r *transactionRepository) GetByIdempotencyKey(ctx context.Context, callerUserID uuid.UUID, key string) (*dto.TransactionRead, error) {
	var model Transaction
	err := r.db.WithContext(ctx).
		First(&model, "caller_user_id = ? AND idempotency_key = ?", callerUserID, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return transactionToRead(&model), nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("sender_account_id = ? OR receiver_account_id = ?", accountID, accountID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	txs := make([]*dto.TransactionRead, 0, len(models))
	for i := range models {
		txs = append(txs, transactionToRead(&models[i]))
	}
	return txs, nil
}

func transactionToRead(model *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                model.ID,
		Kind:              model.Kind,
		Amount:            model.Amount,
		SenderAccountID:   model.SenderAccountID,
		ReceiverAccountID: model.ReceiverAccountID,
		CreatedAt:         model.CreatedAt,
	}
}
