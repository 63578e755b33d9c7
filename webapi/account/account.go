package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/pkg/middleware"
	accountsvc "github.com/zenbank/banking/pkg/service/account"
	authsvc "github.com/zenbank/banking/pkg/service/auth"
	"github.com/zenbank/banking/webapi/common"
)

// Routes registers the account endpoints. All of them require a valid
// bearer token.
//
// Routes:
//   - POST /accounts             : Open a new account for the caller.
//   - GET  /accounts             : List the caller's accounts.
//   - GET  /accounts/:id/balance : Read the balance of one of the caller's accounts.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/accounts", middleware.JwtProtected(cfg.Jwt), Open(accountSvc, authSvc))
	app.Get("/accounts", middleware.JwtProtected(cfg.Jwt), List(accountSvc, authSvc))
	app.Get("/accounts/:id/balance", middleware.JwtProtected(cfg.Jwt), GetBalance(accountSvc, authSvc))
}

// Open opens a zero-balance account for the authenticated caller.
// @Summary Open a new account
// @Description Opens an account at the given branch. The branch must belong to the given bank, and the caller may hold at most one account per bank.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body OpenAccountRequest true "Account details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /accounts [post]
// @Security Bearer
func Open(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		caller, err := authSvc.CallerFromToken(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		bankID, err := uuid.Parse(input.BankID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", err, fiber.StatusBadRequest)
		}
		branchID, err := uuid.Parse(input.BranchID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid branch ID", err, fiber.StatusBadRequest)
		}
		a, err := accountSvc.Open(c.Context(), caller.UserID, bankID, branchID)
		if err != nil {
			log.Errorf("Failed to open account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", a)
	}
}

// List returns every account owned by the authenticated caller.
// @Summary List the caller's accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /accounts [get]
// @Security Bearer
func List(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		caller, err := authSvc.CallerFromToken(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accts, err := accountSvc.ListForUser(c.Context(), caller.UserID)
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts retrieved", accts)
	}
}

// GetBalance returns the balance of one of the caller's accounts.
// @Summary Get account balance
// @Description Returns the balance of the specified account. The account must belong to the caller.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /accounts/{id}/balance [get]
// @Security Bearer
func GetBalance(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		caller, err := authSvc.CallerFromToken(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		balance, err := accountSvc.Balance(c.Context(), caller.UserID, accountID)
		if err != nil {
			log.Errorf("Failed to get balance: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance retrieved", fiber.Map{
			"account_id": accountID,
			"balance":    balance,
		})
	}
}
