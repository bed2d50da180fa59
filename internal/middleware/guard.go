package middleware

import (
	"path"
	"strings"

	"movie-collection/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// DatabaseGuard short-circuits every request while available reports false.
func DatabaseGuard(available func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions || available() {
			return c.Next()
		}
		return utils.DatabaseUnavailableResponse(c)
	}
}

// Preflight answers every OPTIONS request with 200 and an empty body. It
// runs ahead of the CORS middleware so the Access-Control headers it sets
// are kept while its 204 (or the router's 404/405) is replaced.
func Preflight() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		_ = c.Next()
		c.Response().ResetBody()
		c.Status(fiber.StatusOK)
		return nil
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImagesOnly guards the uploads directory: only image files may be read.
func ImagesOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ext := strings.ToLower(path.Ext(c.Path()))
		if !imageExtensions[ext] {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied")
		}
		c.Set("X-Content-Type-Options", "nosniff")
		return c.Next()
	}
}
