package account

// OpenAccountRequest is the request body for opening a new account.
// The owner is always the authenticated caller.
type OpenAccountRequest struct {
	BankID   string `json:"bank_id" validate:"required,uuid4"`
	BranchID string `json:"branch_id" validate:"required,uuid4"`
}
