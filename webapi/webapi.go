// Package webapi wires HTTP handlers and middleware into a Fiber app.
// It is organized into sub-packages per domain:
// - auth: signup and login
// - account: account opening and balance queries
// - transaction: deposits, withdrawals and transfers
// - bank: public bank/branch listing and admin management
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/zenbank/banking/pkg/app"
	accountweb "github.com/zenbank/banking/webapi/account"
	authweb "github.com/zenbank/banking/webapi/auth"
	bankweb "github.com/zenbank/banking/webapi/bank"
	"github.com/zenbank/banking/webapi/common"
	transactionweb "github.com/zenbank/banking/webapi/transaction"
)

// SetupApp builds the Fiber app with all middleware and routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Uses X-Forwarded-For when behind a proxy, falling back to
	// X-Real-IP and then the direct peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Banking API is running! 🚀")
	})

	authweb.Routes(fiberApp, a.AuthService)
	accountweb.Routes(fiberApp, a.AccountService, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.TransactionService, a.AuthService, a.Config)
	bankweb.Routes(fiberApp, a.BankService, a.AuthService, a.Config)

	return fiberApp
}
