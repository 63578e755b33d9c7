// Package auth provides signup, login and token handling. The signing
// secret is injected through config and never read from a global.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/pkg/domain/user"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/repository"
	"github.com/zenbank/banking/pkg/utils"
)

// Caller is the authenticated identity resolved from a verified token.
// It is the only user identity the services trust; a client-supplied
// user id is never used.
type Caller struct {
	UserID uuid.UUID
	Role   user.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// Service provides authentication business logic.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork, JWT config and logger.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Signup registers a new user and returns the profile with a fresh
// token. An already-used email fails with ErrUserAlreadyExists.
func (s *Service) Signup(
	ctx context.Context,
	name, email, password, phoneNumber, address string,
) (u *dto.UserRead, token string, err error) {
	log := s.logger.With("email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return user.ErrUserAlreadyExists
		}
		nu, err := user.New(name, email, password, phoneNumber, address)
		if err != nil {
			return err
		}
		if err = users.Create(ctx, dto.UserCreate{
			ID:             nu.ID,
			Name:           nu.Name,
			Email:          nu.Email,
			HashedPassword: nu.HashedPassword,
			PhoneNumber:    nu.PhoneNumber,
			Address:        nu.Address,
			Role:           string(nu.Role),
		}); err != nil {
			return err
		}
		u, err = users.Get(ctx, nu.ID)
		return err
	})
	if err != nil {
		log.Error("signup failed", "error", err)
		return nil, "", err
	}
	token, err = s.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}
	log.Info("signup successful", "userID", u.ID)
	return u, token, nil
}

// dummyHash keeps password verification constant-time when the email
// does not resolve to a user.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Login verifies the credentials and returns a signed token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (token string, err error) {
	log := s.logger.With("email", email)
	var u *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		log.Error("login failed", "error", err)
		return "", err
	}
	if u == nil {
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Info("login rejected, unknown email")
		return "", user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Info("login rejected, wrong password", "userID", u.ID)
		return "", user.ErrUserUnauthorized
	}
	token, err = s.GenerateToken(u)
	if err != nil {
		return "", err
	}
	log.Info("login successful", "userID", u.ID)
	return token, nil
}

// GenerateToken signs a token carrying the user id and role.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
		"exp":     now.Add(s.cfg.Expiry).Unix(),
	})
	return token.SignedString([]byte(s.cfg.Secret))
}

// CallerFromToken extracts the authenticated caller from a verified
// token. Any malformed claim fails with ErrUserUnauthorized.
func (s *Service) CallerFromToken(token *jwt.Token) (Caller, error) {
	if token == nil {
		return Caller{}, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, user.ErrUserUnauthorized
	}
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return Caller{}, user.ErrUserUnauthorized
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Caller{}, user.ErrUserUnauthorized
	}
	rawRole, ok := claims["role"].(string)
	if !ok || !user.Role(rawRole).Valid() {
		return Caller{}, user.ErrUserUnauthorized
	}
	return Caller{UserID: userID, Role: user.Role(rawRole)}, nil
}
