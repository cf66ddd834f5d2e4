package handlers

import (
	"time"

	"farmtech/internal/log"
	"farmtech/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth         *services.AuthService
	SecureCookie bool
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ensureSID(c *fiber.Ctx, secure bool) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   secure,
		})
	}
	return sid
}

func expireSID(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid signup payload")
	}
	u, err := h.Auth.Signup(in.Username, in.Email, in.Password)
	if err != nil {
		log.Security(c, "auth.signup.fail", map[string]any{"email": in.Email, "reason": err.Error()})
		return apiError(err, "")
	}
	log.Audit(c, "auth.signup", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON("User created successfully!")
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid signin payload")
	}
	sid := ensureSID(c, h.SecureCookie)
	u, err := h.Auth.Signin(sid, in.Email, in.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return apiError(err, "")
	}
	c.Locals("userID", u.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(u)
}

func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Signout(sid); err != nil {
			return err
		}
		log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	}
	expireSID(c, h.SecureCookie)
	return c.JSON("User has been logged out!")
}
