package handlers

import (
	"farmtech/internal/domain"
	applog "farmtech/internal/log"
	"farmtech/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AttachUser puts the signed-in user, if any, into Locals for templates and logs.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("userID", u.ID)
			}
		}
		return c.Next()
	}
}

// RequireUser rejects API calls without a bound session with 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.session", map[string]any{"sid": sid})
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
