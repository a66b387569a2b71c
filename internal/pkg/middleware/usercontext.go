package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/UrbanWatchHQ/BillboardWatch/app/controllers"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/session"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes session handling so controllers only read usercontext.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous user
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			IsLoggedIn:  false,
			IsAuthority: false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	// Get user ID from session
	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			IsLoggedIn:  false,
			IsAuthority: false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)
	isAuthority := sess.Get(controllers.USER_IS_AUTHORITY)

	userCtx := usercontext.UserContext{
		UserID:      userID.(uint),
		Username:    username,
		IsLoggedIn:  true,
		IsAuthority: isAuthority != nil && isAuthority.(bool),
	}
	c.Locals("USER_CONTEXT", userCtx)

	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, userCtx.UserID)
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyIsAuthority, userCtx.IsAuthority)

	return c.Next()
}
