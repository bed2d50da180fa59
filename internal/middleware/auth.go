// Package middleware holds the fiber handlers that wrap the API routes.
package middleware

import (
	"strings"

	"movie-collection/internal/services"
	"movie-collection/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "token_claims"

// RequireAuth rejects requests without a valid bearer token and stores the
// verified claims for the handlers.
func RequireAuth(tokens services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized: No token provided")
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid authorization header")
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth applies RequireAuth only when enabled is set.
func OptionalAuth(enabled bool, tokens services.TokenService) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return RequireAuth(tokens)
}

// ClaimsFrom returns the claims stored by RequireAuth.
func ClaimsFrom(c *fiber.Ctx) (*services.TokenClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*services.TokenClaims)
	return claims, ok && claims != nil
}
