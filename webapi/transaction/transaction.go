package transaction

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/middleware"
	authsvc "github.com/zenbank/banking/pkg/service/auth"
	transactionsvc "github.com/zenbank/banking/pkg/service/transaction"
	"github.com/zenbank/banking/webapi/common"
)

// Routes registers the transaction endpoints. All of them require a
// valid bearer token.
//
// Routes:
//   - POST /transactions : Execute a deposit, withdrawal or transfer.
//   - GET  /transactions : List the transactions of one of the caller's accounts.
func Routes(app *fiber.App, txSvc *transactionsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/transactions", middleware.JwtProtected(cfg.Jwt), Create(txSvc, authSvc))
	app.Get("/transactions", middleware.JwtProtected(cfg.Jwt), List(txSvc, authSvc))
}

// Create executes a money movement on behalf of the caller.
// @Summary Execute a transaction
// @Description Runs a deposit, withdrawal or transfer. Ownership of the source account is checked against the caller; an idempotency key makes retries safe.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security Bearer
func Create(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		caller, err := authSvc.CallerFromToken(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err // error response already written
		}
		cmd := dto.TransactionCommand{
			Kind:           input.Kind,
			Amount:         input.Amount,
			IdempotencyKey: input.IdempotencyKey,
		}
		if input.SenderAccountID != "" {
			id, err := uuid.Parse(input.SenderAccountID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid sender account ID", err, fiber.StatusBadRequest)
			}
			cmd.SenderAccountID = &id
		}
		if input.ReceiverAccountID != "" {
			id, err := uuid.Parse(input.ReceiverAccountID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid receiver account ID", err, fiber.StatusBadRequest)
			}
			cmd.ReceiverAccountID = &id
		}
		tx, err := txSvc.Execute(c.Context(), caller.UserID, cmd)
		if err != nil {
			log.Errorf("Transaction failed: %v", err)
			return common.ProblemDetailsJSON(c, "Transaction failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction executed", tx)
	}
}

// List returns the transaction history of one of the caller's accounts,
// newest first.
// @Summary List account transactions
// @Tags transactions
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security Bearer
func List(txSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		caller, err := authSvc.CallerFromToken(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Query("account_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		txs, err := txSvc.ListForAccount(c.Context(), caller.UserID, accountID)
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions retrieved", txs)
	}
}
