package middleware

import (
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by AuthRequired.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthRequired checks for a valid Bearer access token and stores the caller's
// identity in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.Unauthorized("authorization header is required")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return apperrors.Unauthorized("authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1], "access")
		if err != nil {
			return err
		}

		c.Locals(LocalUserID, claims["id"])
		c.Locals(LocalEmail, claims["email"])
		c.Locals(LocalRole, claims["role"])
		return c.Next()
	}
}

// RoleRequired allows the request through only when the authenticated caller
// holds one of the given roles. It must run after AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return apperrors.Forbidden("insufficient permissions")
	}
}
