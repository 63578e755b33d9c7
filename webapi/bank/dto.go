package bank

// CreateBankRequest is the request body for creating a bank.
type CreateBankRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// UpdateBankRequest is the request body for renaming a bank.
type UpdateBankRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CreateBranchRequest is the request body for creating a branch under a
// bank.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"required,max=255"`
}

// UpdateBranchRequest is the request body for updating a branch. At
// least one field must be provided.
type UpdateBranchRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}
