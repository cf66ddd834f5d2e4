package handlers

import (
	"farmtech/internal/domain"
	"farmtech/internal/log"
	"farmtech/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users        *services.UserService
	Listings     *services.ListingService
	SecureCookie bool
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var upd domain.UserUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user payload")
	}
	u, err := h.Users.Update(currentUser(c).ID, c.Params("id"), upd)
	if err != nil {
		return apiError(err, "You can only update your own account!")
	}
	log.Audit(c, "user.update", nil)
	return c.JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.Users.Delete(c.UserContext(), currentUser(c).ID, c.Params("id")); err != nil {
		return apiError(err, "You can only delete your own account!")
	}
	log.Audit(c, "user.delete", nil)
	expireSID(c, h.SecureCookie)
	return c.JSON("User has been deleted!")
}

func (h *UserHandler) OwnListings(c *fiber.Ctx) error {
	ls, err := h.Listings.ListByUser(currentUser(c).ID, c.Params("id"))
	if err != nil {
		return apiError(err, "You can only view your own listings!")
	}
	return c.JSON(ls)
}
