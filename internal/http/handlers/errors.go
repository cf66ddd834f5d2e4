package handlers

import (
	"errors"
	"strings"

	"farmtech/internal/log"
	"farmtech/internal/services"
	"farmtech/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler answers /api/* with a JSON error body and everything else with
// the notfound page. Server-side failures are logged and never described to
// the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error(c, "server.error", err, nil)
		msg = "Internal Server Error"
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"success": false, "statusCode": code, "message": msg})
	}

	page := msg
	switch {
	case code == fiber.StatusNotFound:
		page = "Page not found"
	case code >= fiber.StatusInternalServerError:
		page = "Something went wrong. Please try again."
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": page}); rerr != nil {
		return c.Status(code).SendString(page)
	}
	return nil
}

// apiError maps service errors onto HTTP errors. forbidden is the message
// sent when the caller does not own the resource.
func apiError(err error, forbidden string) error {
	var verr *validate.Error
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Listing not found!")
	case errors.Is(err, services.ErrForbidden):
		return fiber.NewError(fiber.StatusUnauthorized, forbidden)
	case errors.Is(err, services.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, "Username or email already in use!")
	case errors.Is(err, services.ErrBadCreds):
		return fiber.NewError(fiber.StatusUnauthorized, "Wrong credentials!")
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	}
	return err
}
