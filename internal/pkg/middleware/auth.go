package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in session and returns JSON 401 otherwise.
// Submission is blocked here before any network side effect happens.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "authentication_missing",
			"message": "Please sign in to submit reports",
		})
	}
	return c.Next()
}

// RequireAuthority ensures the session user belongs to the municipal authority.
func RequireAuthority(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "authentication_missing",
			"message": "login required",
		})
	}
	if !usercontext.IsAuthority(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "authority role required",
		})
	}
	return c.Next()
}
