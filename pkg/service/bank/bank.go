// Package bank provides the administrative business logic for managing
// banks and branches. Role gating happens at the transport layer; the
// service assumes an already-authorized caller.
package bank

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/domain/bank"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

// Service provides business logic for bank and branch management.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateBank creates a new bank.
func (s *Service) CreateBank(ctx context.Context, name string) (b *dto.BankRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		nb, err := bank.New(name)
		if err != nil {
			return err
		}
		if err = banks.Create(ctx, dto.BankCreate{ID: nb.ID, Name: nb.Name}); err != nil {
			return err
		}
		b, err = banks.Get(ctx, nb.ID)
		return err
	})
	if err != nil {
		s.logger.Error("bank creation failed", "name", name, "error", err)
		return nil, err
	}
	s.logger.Info("bank created", "bankID", b.ID, "name", b.Name)
	return b, nil
}

// RenameBank changes a bank's name.
func (s *Service) RenameBank(ctx context.Context, id uuid.UUID, name string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		existing, err := banks.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return bank.ErrBankNotFound
		}
		return banks.Update(ctx, id, dto.BankUpdate{Name: &name})
	})
}

// DeleteBank removes a bank.
func (s *Service) DeleteBank(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		existing, err := banks.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return bank.ErrBankNotFound
		}
		return banks.Delete(ctx, id)
	})
}

// ListBanks returns all banks.
func (s *Service) ListBanks(ctx context.Context) (bs []*dto.BankRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		bs, err = banks.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}

// CreateBranch creates a branch under an existing bank.
func (s *Service) CreateBranch(
	ctx context.Context,
	name, address string,
	bankID uuid.UUID,
) (br *dto.BranchRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		branches, err := uow.BranchRepository()
		if err != nil {
			return err
		}
		parent, err := banks.Get(ctx, bankID)
		if err != nil {
			return err
		}
		if parent == nil {
			return bank.ErrBankNotFound
		}
		nb, err := bank.NewBranch(name, address, bankID)
		if err != nil {
			return err
		}
		if err = branches.Create(ctx, dto.BranchCreate{
			ID:      nb.ID,
			Name:    nb.Name,
			Address: nb.Address,
			BankID:  nb.BankID,
		}); err != nil {
			return err
		}
		br, err = branches.Get(ctx, nb.ID)
		return err
	})
	if err != nil {
		s.logger.Error("branch creation failed", "name", name, "bankID", bankID, "error", err)
		return nil, err
	}
	s.logger.Info("branch created", "branchID", br.ID, "bankID", bankID)
	return br, nil
}

// UpdateBranch updates a branch's name and/or address. At least one
// field must be set; the transport layer validates that.
func (s *Service) UpdateBranch(
	ctx context.Context,
	id uuid.UUID,
	update dto.BranchUpdate,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		branches, err := uow.BranchRepository()
		if err != nil {
			return err
		}
		existing, err := branches.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return bank.ErrBranchNotFound
		}
		return branches.Update(ctx, id, update)
	})
}

// DeleteBranch removes a branch.
func (s *Service) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		branches, err := uow.BranchRepository()
		if err != nil {
			return err
		}
		existing, err := branches.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return bank.ErrBranchNotFound
		}
		return branches.Delete(ctx, id)
	})
}

// ListBranches returns the branches of a bank.
func (s *Service) ListBranches(
	ctx context.Context,
	bankID uuid.UUID,
) (brs []*dto.BranchRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		branches, err := uow.BranchRepository()
		if err != nil {
			return err
		}
		parent, err := banks.Get(ctx, bankID)
		if err != nil {
			return err
		}
		if parent == nil {
			return bank.ErrBankNotFound
		}
		brs, err = branches.ListByBank(ctx, bankID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return brs, nil
}
