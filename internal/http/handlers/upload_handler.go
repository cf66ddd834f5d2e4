package handlers

import (
	"errors"
	"io"

	"farmtech/internal/log"
	"farmtech/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Uploads *services.UploadService
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No file uploaded"})
	}
	if fh.Size > services.MaxUploadBytes {
		log.Security(c, "upload.reject", map[string]any{"reason": "size", "size": fh.Size})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": services.ErrTooLarge.Error()})
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	body, err := io.ReadAll(io.LimitReader(f, services.MaxUploadBytes+1))
	if err != nil {
		return err
	}

	url, err := h.Uploads.Upload(c.UserContext(), fh.Filename, body)
	switch {
	case errors.Is(err, services.ErrNotImage), errors.Is(err, services.ErrTooLarge):
		log.Security(c, "upload.reject", map[string]any{"reason": err.Error(), "name": fh.Filename})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	case err != nil:
		return err
	}
	log.Audit(c, "upload.store", map[string]any{"url": url})
	return c.JSON(fiber.Map{"success": true, "url": url})
}
