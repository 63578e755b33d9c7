// Package common holds the response envelope, problem-details error
// shape and request binding helpers shared by all webapi packages.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zenbank/banking/pkg/domain"
	"github.com/zenbank/banking/pkg/domain/account"
	"github.com/zenbank/banking/pkg/domain/bank"
	"github.com/zenbank/banking/pkg/domain/user"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes a problem-details response. The status is
// derived from err via ErrorToStatusCode unless an int is passed among
// the optional details; a string detail becomes the Detail field.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, details ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, d := range details {
		switch v := d.(type) {
		case int:
			status = v
		case string:
			pd.Detail = v
		default:
			pd.Errors = v
		}
	}
	pd.Status = status
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Input and
// business-rule rejections are 400, policy denials 401, everything
// unrecognized is a storage or system failure and maps to 500.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, account.ErrInvalidTransactionKind),
		errors.Is(err, account.ErrTransactionAmountMustBePositive),
		errors.Is(err, account.ErrMissingSenderAccount),
		errors.Is(err, account.ErrMissingReceiverAccount),
		errors.Is(err, account.ErrCannotTransferToSameAccount),
		errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrAccountAlreadyExists),
		errors.Is(err, bank.ErrBankNotFound),
		errors.Is(err, bank.ErrBranchNotFound),
		errors.Is(err, user.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrNotOwner),
		errors.Is(err, user.ErrUserUnauthorized),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrIdempotencyConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

var validate = validator.New()

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an
// error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
