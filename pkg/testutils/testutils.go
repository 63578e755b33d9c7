// Package testutils provides an in-memory UnitOfWork and fixtures for
// service tests. The fake serializes Do blocks on a mutex, so each
// unit of work observes the state left by the previous one, the same
// way row locks serialize conflicting database transactions.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
)

// DiscardLogger returns a logger for tests that swallows all output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MemoryUoW is an in-memory repository.UnitOfWork backed by maps.
// Mutations are applied immediately; there is no rollback.
type MemoryUoW struct {
	mu sync.Mutex

	users        map[uuid.UUID]dto.UserRead
	banks        map[uuid.UUID]dto.BankRead
	branches     map[uuid.UUID]dto.BranchRead
	accounts     map[uuid.UUID]dto.AccountRead
	transactions []dto.TransactionRead
	idempotency  map[idemKey]uuid.UUID

	// Err, when set, is returned from every repository accessor to
	// simulate a storage failure.
	Err error
}

// idemKey mirrors the ledger's per-caller unique index on the
// idempotency key.
type idemKey struct {
	caller uuid.UUID
	key    string
}

// NewMemoryUoW creates an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{
		users:       map[uuid.UUID]dto.UserRead{},
		banks:       map[uuid.UUID]dto.BankRead{},
		branches:    map[uuid.UUID]dto.BranchRead{},
		accounts:    map[uuid.UUID]dto.AccountRead{},
		idempotency: map[idemKey]uuid.UUID{},
	}
}

// Do runs fn holding the store lock, serializing concurrent units of
// work against each other.
func (m *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

// UserRepository implements repository.UnitOfWork.
func (m *MemoryUoW) UserRepository() (repository.UserRepository, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &memoryUserRepo{m}, nil
}

// BankRepository implements repository.UnitOfWork.
func (m *MemoryUoW) BankRepository() (repository.BankRepository, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &memoryBankRepo{m}, nil
}

// BranchRepository implements repository.UnitOfWork.
func (m *MemoryUoW) BranchRepository() (repository.BranchRepository, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &memoryBranchRepo{m}, nil
}

// AccountRepository implements repository.UnitOfWork.
func (m *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &memoryAccountRepo{m}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (m *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &memoryTransactionRepo{m}, nil
}

// SeedUser inserts a user and returns its id.
func (m *MemoryUoW) SeedUser(u dto.UserRead) uuid.UUID {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return u.ID
}

// SeedBank inserts a bank and returns its id.
func (m *MemoryUoW) SeedBank(name string) uuid.UUID {
	id := uuid.New()
	m.banks[id] = dto.BankRead{ID: id, Name: name}
	return id
}

// SeedBranch inserts a branch under bankID and returns its id.
func (m *MemoryUoW) SeedBranch(bankID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	m.branches[id] = dto.BranchRead{ID: id, Name: name, BankID: bankID}
	return id
}

// SeedAccount inserts an account with the given owner and balance and
// returns its id.
func (m *MemoryUoW) SeedAccount(userID uuid.UUID, balance int64) uuid.UUID {
	id := uuid.New()
	m.accounts[id] = dto.AccountRead{
		ID:       id,
		UserID:   userID,
		BankID:   uuid.New(),
		BranchID: uuid.New(),
		Balance:  balance,
	}
	return id
}

// Balance reads an account balance directly from the store.
func (m *MemoryUoW) Balance(id uuid.UUID) int64 {
	return m.accounts[id].Balance
}

// LedgerSize reports the number of recorded transactions.
func (m *MemoryUoW) LedgerSize() int {
	return len(m.transactions)
}

type memoryUserRepo struct{ m *MemoryUoW }

func (r *memoryUserRepo) Create(ctx context.Context, create dto.UserCreate) error {
	r.m.users[create.ID] = dto.UserRead{
		ID:             create.ID,
		Name:           create.Name,
		Email:          create.Email,
		HashedPassword: create.HashedPassword,
		PhoneNumber:    create.PhoneNumber,
		Address:        create.Address,
		Role:           create.Role,
	}
	return nil
}

func (r *memoryUserRepo) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	if u, ok := r.m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type memoryBankRepo struct{ m *MemoryUoW }

func (r *memoryBankRepo) Create(ctx context.Context, create dto.BankCreate) error {
	r.m.banks[create.ID] = dto.BankRead{ID: create.ID, Name: create.Name}
	return nil
}

func (r *memoryBankRepo) Get(ctx context.Context, id uuid.UUID) (*dto.BankRead, error) {
	if b, ok := r.m.banks[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *memoryBankRepo) Update(ctx context.Context, id uuid.UUID, update dto.BankUpdate) error {
	b := r.m.banks[id]
	if update.Name != nil {
		b.Name = *update.Name
	}
	r.m.banks[id] = b
	return nil
}

func (r *memoryBankRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.m.banks, id)
	return nil
}

func (r *memoryBankRepo) ListAll(ctx context.Context) ([]*dto.BankRead, error) {
	banks := make([]*dto.BankRead, 0, len(r.m.banks))
	for _, b := range r.m.banks {
		b := b
		banks = append(banks, &b)
	}
	return banks, nil
}

type memoryBranchRepo struct{ m *MemoryUoW }

func (r *memoryBranchRepo) Create(ctx context.Context, create dto.BranchCreate) error {
	r.m.branches[create.ID] = dto.BranchRead{
		ID:      create.ID,
		Name:    create.Name,
		Address: create.Address,
		BankID:  create.BankID,
	}
	return nil
}

func (r *memoryBranchRepo) Get(ctx context.Context, id uuid.UUID) (*dto.BranchRead, error) {
	if b, ok := r.m.branches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *memoryBranchRepo) Update(ctx context.Context, id uuid.UUID, update dto.BranchUpdate) error {
	b := r.m.branches[id]
	if update.Name != nil {
		b.Name = *update.Name
	}
	if update.Address != nil {
		b.Address = *update.Address
	}
	r.m.branches[id] = b
	return nil
}

func (r *memoryBranchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.m.branches, id)
	return nil
}

func (r *memoryBranchRepo) ListByBank(ctx context.Context, bankID uuid.UUID) ([]*dto.BranchRead, error) {
	var branches []*dto.BranchRead
	for _, b := range r.m.branches {
		if b.BankID == bankID {
			b := b
			branches = append(branches, &b)
		}
	}
	return branches, nil
}

type memoryAccountRepo struct{ m *MemoryUoW }

func (r *memoryAccountRepo) Create(ctx context.Context, create dto.AccountCreate) error {
	r.m.accounts[create.ID] = dto.AccountRead{
		ID:       create.ID,
		UserID:   create.UserID,
		BankID:   create.BankID,
		BranchID: create.BranchID,
		Balance:  create.Balance,
	}
	return nil
}

func (r *memoryAccountRepo) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	if a, ok := r.m.accounts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *memoryAccountRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	return r.Get(ctx, id)
}

func (r *memoryAccountRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var accounts []*dto.AccountRead
	for _, a := range r.m.accounts {
		if a.UserID == userID {
			a := a
			accounts = append(accounts, &a)
		}
	}
	return accounts, nil
}

func (r *memoryAccountRepo) GetByUserAndBank(ctx context.Context, userID, bankID uuid.UUID) (*dto.AccountRead, error) {
	for _, a := range r.m.accounts {
		if a.UserID == userID && a.BankID == bankID {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *memoryAccountRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	a := r.m.accounts[id]
	a.Balance = balance
	r.m.accounts[id] = a
	return nil
}

type memoryTransactionRepo struct{ m *MemoryUoW }

func (r *memoryTransactionRepo) Create(ctx context.Context, create dto.TransactionCreate) error {
	if create.IdempotencyKey != "" {
		ik := idemKey{caller: create.CallerUserID, key: create.IdempotencyKey}
		if _, ok := r.m.idempotency[ik]; ok {
			return account.ErrIdempotencyConflict
		}
		r.m.idempotency[ik] = create.ID
	}
	r.m.transactions = append(r.m.transactions, dto.TransactionRead{
		ID:                create.ID,
		Kind:              create.Kind,
		Amount:            create.Amount,
		SenderAccountID:   create.SenderAccountID,
		ReceiverAccountID: create.ReceiverAccountID,
		CreatedAt:         create.CreatedAt,
	})
	return nil
}

func (r *memoryTransactionRepo) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	for i := range r.m.transactions {
		if r.m.transactions[i].ID == id {
			tx := r.m.transactions[i]
			return &tx, nil
		}
	}
	return nil, nil
}

func (r *memoryTransactionRepo) GetByIdempotencyKey(ctx context.Context, callerUserID uuid.UUID, key string) (*dto.TransactionRead, error) {
	id, ok := r.m.idempotency[idemKey{caller: callerUserID, key: key}]
	if !ok {
		return nil, nil
	}
	return r.Get(ctx, id)
}

func (r *memoryTransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var txs []*dto.TransactionRead
	for i := len(r.m.transactions) - 1; i >= 0; i-- {
		tx := r.m.transactions[i]
		refersTo := (tx.SenderAccountID != nil && *tx.SenderAccountID == accountID) ||
			(tx.ReceiverAccountID != nil && *tx.ReceiverAccountID == accountID)
		if refersTo {
			tx := tx
			txs = append(txs, &tx)
		}
	}
	return txs, nil
}
