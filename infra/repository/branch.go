package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository returns a GORM-backed BranchRepository.
func NewBranchRepository(db *gorm.DB) repository.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, create dto.BranchCreate) error {
	model := Branch{
		ID:      create.ID,
		Name:    create.Name,
		Address: create.Address,
		BankID:  create.BankID,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *branchRepository) Get(ctx context.Context, id uuid.UUID) (*dto.BranchRead, error) {
	var model Branch
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return branchToRead(&model), nil
}

func (r *branchRepository) Update(ctx context.Context, id uuid.UUID, update dto.BranchUpdate) error {
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Address != nil {
		fields["address"] = *update.Address
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Branch{}).Where("id = ?", id).Updates(fields).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Branch{}, "id = ?", id).Error
}

func (r *branchRepository) ListByBank(ctx context.Context, bankID uuid.UUID) ([]*dto.BranchRead, error) {
	var models []Branch
	err := r.db.WithContext(ctx).
		Where("bank_id = ?", bankID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	branches := make([]*dto.BranchRead, 0, len(models))
	for i := range models {
		branches = append(branches, branchToRead(&models[i]))
	}
	return branches, nil
}

func branchToRead(model *Branch) *dto.BranchRead {
	return &dto.BranchRead{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		BankID:    model.BankID,
		CreatedAt: model.CreatedAt,
	}
}
