package transaction

// CreateTransactionRequest is the request body for submitting a money
// movement. Which account fields are required depends on the kind:
// deposits need a receiver, withdrawals a sender, transfers both.
type CreateTransactionRequest struct {
	Kind              string `json:"kind" validate:"required,oneof=deposit withdraw transfer"`
	Amount            int64  `json:"amount" validate:"required"`
	SenderAccountID   string `json:"sender_account_id" validate:"omitempty,uuid4"`
	ReceiverAccountID string `json:"receiver_account_id" validate:"omitempty,uuid4"`
	IdempotencyKey    string `json:"idempotency_key" validate:"omitempty,max=255"`
}
