package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

type bankRepository struct {
	db *gorm.DB
}

// NewBankRepository returns a GORM-backed BankRepository.
func NewBankRepository(db *gorm.DB) repository.BankRepository {
	return &bankRepository{db: db}
}

func (r *bankRepository) Create(ctx context.Context, create dto.BankCreate) error {
	model := Bank{ID: create.ID, Name: create.Name}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *bankRepository) Get(ctx context.Context, id uuid.UUID) (*dto.BankRead, error) {
	var model Bank
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bankToRead(&model), nil
}

func (r *bankRepository) Update(ctx context.Context, id uuid.UUID, update dto.BankUpdate) error {
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Bank{}).Where("id = ?", id).Updates(fields).Error
}

func (r *bankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Bank{}, "id = ?", id).Error
}

func (r *bankRepository) ListAll(ctx context.Context) ([]*dto.BankRead, error) {
	var models []Bank
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	banks := make([]*dto.BankRead, 0, len(models))
	for i := range models {
		banks = append(banks, bankToRead(&models[i]))
	}
	return banks, nil
}

func bankToRead(model *Bank) *dto.BankRead {
	return &dto.BankRead{ID: model.ID, Name: model.Name, CreatedAt: model.CreatedAt}
}
