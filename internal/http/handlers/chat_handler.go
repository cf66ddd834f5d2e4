package handlers

import (
	"strings"

	"farmtech/internal/chat"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	Matcher *chat.Matcher
}

type chatRequest struct {
	Message string `json:"message"`
}

// Reply answers one line of user text. The transcript lives client-side.
func (h *ChatHandler) Reply(c *fiber.Ctx) error {
	var in chatRequest
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}
	return c.JSON(fiber.Map{"reply": h.Matcher.Reply(in.Message)})
}

func (h *ChatHandler) Greeting(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"reply": h.Matcher.Greeting()})
}
