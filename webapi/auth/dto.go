package auth

// SignupRequest is the request body for registering a new user.
type SignupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

// LoginRequest is the request body for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
