package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a GORM-backed AccountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	model := Account{
		ID:       create.ID,
		UserID:   create.UserID,
		BankID:   create.BankID,
		BranchID: create.BranchID,
		Balance:  create.Balance,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var model Account
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return accountToRead(&model), nil
}

// GetForUpdate reads the row under SELECT ... FOR UPDATE. The lock is
// held until the surrounding transaction commits or rolls back, which
// serializes concurrent balance mutations on the same account.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var model Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return accountToRead(&model), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	accounts := make([]*dto.AccountRead, 0, len(models))
	for i := range models {
		accounts = append(accounts, accountToRead(&models[i]))
	}
	return accounts, nil
}

func (r *accountRepository) GetByUserAndBank(ctx context.Context, userID, bankID uuid.UUID) (*dto.AccountRead, error) {
	var model Account
	err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND bank_id = ?", userID, bankID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return accountToRead(&model), nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance).Error
}

func accountToRead(model *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        model.ID,
		UserID:    model.UserID,
		BankID:    model.BankID,
		BranchID:  model.BranchID,
		Balance:   model.Balance,
		CreatedAt: model.CreatedAt,
	}
}
