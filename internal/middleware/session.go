package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// SessionResolver resolves an opaque session token to a user ID.
// Implemented by session.Manager; declared here to avoid an import cycle.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uint, bool, error)
}

// SessionRequired returns a middleware that resolves the session cookie and
// stores the authenticated user ID in c.Locals("userID"). Unauthenticated
// browser requests are redirected to the login page. A session store
// failure fails closed.
func SessionRequired(sessions SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		userID, ok, err := sessions.Resolve(c.UserContext(), token)
		if err != nil {
			Logger.ErrorContext(c.UserContext(), "session resolution failed", "error", err.Error())
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "session store unavailable",
			})
		}
		if !ok {
			// Unknown, expired or terminated token: clear the stale cookie.
			c.ClearCookie(cookieName)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("userID", userID)

		// Re-inject so downstream logging picks up the user.
		ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
