package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials or token are invalid.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrUserAlreadyExists is returned when signing up with an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Role is the authorization level attached to a user. It has exactly
// one serialization: the lowercase string stored in the database and
// carried in token claims.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an authenticated identity in the system.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	HashedPassword string
	PhoneNumber    string
	Address        string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New creates a User with a hashed password and the default role.
func New(name, email, password, phoneNumber, address string) (*User, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("email is not valid")
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		PhoneNumber:    phoneNumber,
		Address:        address,
		Role:           RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// NewFromData creates a User from raw data (used for DB hydration).
func NewFromData(
	id uuid.UUID,
	name, email, hashedPassword, phoneNumber, address string,
	role Role,
	created, updated time.Time,
) *User {
	return &User{
		ID:             id,
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		PhoneNumber:    phoneNumber,
		Address:        address,
		Role:           role,
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}
