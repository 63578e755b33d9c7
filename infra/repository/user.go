package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, create dto.UserCreate) error {
	model := User{
		ID:             create.ID,
		Name:           create.Name,
		Email:          create.Email,
		HashedPassword: create.HashedPassword,
		PhoneNumber:    create.PhoneNumber,
		Address:        create.Address,
		Role:           create.Role,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var model User
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userToRead(&model), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	var model User
	err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userToRead(&model), nil
}

func userToRead(model *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		HashedPassword: model.HashedPassword,
		PhoneNumber:    model.PhoneNumber,
		Address:        model.Address,
		Role:           model.Role,
		CreatedAt:      model.CreatedAt,
	}
}
