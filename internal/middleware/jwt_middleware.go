package middleware

import (
	"strings"

	"glowshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware guarding the mutating catalog
// routes. A missing credential is rejected with 401; a malformed,
// expired, or wrongly signed token with 403.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).SendString("Access denied!")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusForbidden).SendString("Invalid token!")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusForbidden).SendString("Invalid token!")
		}

		// Identity for downstream handlers
		c.Locals("user_id", claims["id"])
		c.Locals("email", claims["email"])

		return c.Next()
	}
}
