package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTransactionKind is returned when the kind is not deposit, withdraw or transfer.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	// ErrMissingSenderAccount is returned when a withdraw or transfer omits the sender account id.
	ErrMissingSenderAccount = errors.New("sender account id is missing")
	// ErrMissingReceiverAccount is returned when a deposit or transfer omits the receiver account id.
	ErrMissingReceiverAccount = errors.New("receiver account id is missing")
	// ErrIdempotencyConflict is returned when a transaction with the same
	// idempotency key is recorded concurrently; a retry replays cleanly.
	ErrIdempotencyConflict = errors.New("a transaction with this idempotency key is already in progress")
)

// Kind identifies the direction of a money movement. It has exactly
// one serialization: the lowercase strings below, used in the API and
// the database alike.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// ParseKind maps a wire string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdraw, KindTransfer:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionKind, s)
	}
}

// Transaction is an immutable fact record of a completed money
// movement. It is created once at persistence time and never updated
// or deleted. At least one of SenderAccountID/ReceiverAccountID is
// set; a transfer carries both, and they differ.
type Transaction struct {
	ID                uuid.UUID
	Kind              Kind
	Amount            int64
	SenderAccountID   *uuid.UUID
	ReceiverAccountID *uuid.UUID
	IdempotencyKey    string
	CreatedAt         time.Time
}

// NewTransaction builds a pending transaction record after the
// authorization checks have passed. It re-validates the structural
// invariants so a record can never be constructed in a bad shape.
func NewTransaction(
	kind Kind,
	amount int64,
	sender, receiver *uuid.UUID,
	idempotencyKey string,
) (*Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	switch kind {
	case KindDeposit:
		if receiver == nil {
			return nil, ErrMissingReceiverAccount
		}
		sender = nil
	case KindWithdraw:
		if sender == nil {
			return nil, ErrMissingSenderAccount
		}
		receiver = nil
	case KindTransfer:
		if sender == nil {
			return nil, ErrMissingSenderAccount
		}
		if receiver == nil {
			return nil, ErrMissingReceiverAccount
		}
		if *sender == *receiver {
			return nil, ErrCannotTransferToSameAccount
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransactionKind, kind)
	}
	return &Transaction{
		ID:                uuid.New(),
		Kind:              kind,
		Amount:            amount,
		SenderAccountID:   sender,
		ReceiverAccountID: receiver,
		IdempotencyKey:    idempotencyKey,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// NewTransactionFromData creates a Transaction from raw data (used for
// DB hydration or test fixtures). This bypasses invariants and should
// only be used for repository hydration or tests.
func NewTransactionFromData(
	id uuid.UUID,
	kind Kind,
	amount int64,
	sender, receiver *uuid.UUID,
	idempotencyKey string,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:                id,
		Kind:              kind,
		Amount:            amount,
		SenderAccountID:   sender,
		ReceiverAccountID: receiver,
		IdempotencyKey:    idempotencyKey,
		CreatedAt:         created,
	}
}
