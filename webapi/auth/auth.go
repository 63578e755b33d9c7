package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/zenbank/banking/pkg/domain/user"
	authsvc "github.com/zenbank/banking/pkg/service/auth"
	"github.com/zenbank/banking/webapi/common"
)

// Routes registers the public authentication endpoints.
//
// Routes:
//   - POST /signup : Register a new user and return a token.
//   - POST /login  : Authenticate a user and return a token.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/signup", Signup(authSvc))
	app.Post("/login", Login(authSvc))
}

// Signup registers a new user account.
// @Summary Register a new user
// @Description Creates a user with the given profile and credentials. Returns the user profile and a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /signup [post]
func Signup(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignupRequest](c)
		if input == nil {
			return err // error response already written
		}
		u, token, err := authSvc.Signup(
			c.Context(),
			input.Name, input.Email, input.Password, input.PhoneNumber, input.Address,
		)
		if err != nil {
			if errors.Is(err, user.ErrUserAlreadyExists) {
				return common.ProblemDetailsJSON(c, "Email already registered", err)
			}
			log.Errorf("Signup failed: %v", err)
			return common.ProblemDetailsJSON(c, "Signup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", fiber.Map{
			"user":  u,
			"token": token,
		})
	}
}

// Login authenticates a user and returns a signed token.
// @Summary User login
// @Description Authenticate with email and password. Unknown email and wrong password produce the same response.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err // error response already written
		}
		token, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrUserUnauthorized) {
				return common.ProblemDetailsJSON(
					c, "Invalid email or password", nil,
					"Email or password is incorrect", fiber.StatusUnauthorized)
			}
			log.Errorf("Login failed: %v", err)
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
