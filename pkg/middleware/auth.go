// Package middleware wires authentication into the request pipeline.
// Admin gating is an explicit guard composed after the JWT check, not
// an implicit wrapper around handlers.
package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/pkg/service/auth"
)

// JwtProtected verifies the bearer token and stores it in the request
// locals under "user".
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "missing or malformed JWT") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": fiber.StatusBadRequest, "message": "Missing or malformed token"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": fiber.StatusUnauthorized, "message": "Invalid or expired token"})
}

// RequireAdmin rejects callers whose verified token does not carry the
// admin role. It must be composed after JwtProtected.
func RequireAdmin(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		caller, err := authSvc.CallerFromToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": fiber.StatusUnauthorized, "message": "Unauthorized"})
		}
		if !caller.IsAdmin() {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": fiber.StatusUnauthorized, "message": "Admin access required"})
		}
		return c.Next()
	}
}
