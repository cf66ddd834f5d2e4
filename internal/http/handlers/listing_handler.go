package handlers

import (
	"errors"

	"farmtech/internal/domain"
	"farmtech/internal/log"
	"farmtech/internal/query"
	"farmtech/internal/services"
	"farmtech/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
}

// queryParams adapts the request's query string to query.Params.
type queryParams struct{ c *fiber.Ctx }

func (p queryParams) Get(key string) string { return p.c.Query(key) }

func (h *ListingHandler) Search(c *fiber.Ctx) error {
	crit := query.Build(queryParams{c})
	ls, err := h.Listings.Search(c.UserContext(), crit)
	if err != nil {
		return err
	}
	return c.JSON(ls)
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "listing"})
		return fiber.NewError(fiber.StatusNotFound, "Listing not found!")
	}
	l, err := h.Listings.Get(id)
	if err != nil {
		return apiError(err, "")
	}
	return c.JSON(l)
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in domain.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid listing payload")
	}
	u := currentUser(c)
	l, err := h.Listings.Create(c.UserContext(), u.ID, in)
	if err != nil {
		log.Security(c, "listing.create.fail", map[string]any{"err": err.Error()})
		return apiError(err, "")
	}
	log.Audit(c, "listing.create", map[string]any{"listing": l.ID})
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Listing not found!")
	}
	var in domain.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid listing payload")
	}
	l, err := h.Listings.Update(c.UserContext(), currentUser(c).ID, id, in)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			log.Security(c, "listing.update.denied", map[string]any{"listing": id})
		}
		return apiError(err, "You can only update your own listings!")
	}
	log.Audit(c, "listing.update", map[string]any{"listing": id})
	return c.JSON(l)
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Listing not found!")
	}
	if err := h.Listings.Delete(c.UserContext(), currentUser(c).ID, id); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			log.Security(c, "listing.delete.denied", map[string]any{"listing": id})
		}
		return apiError(err, "You can only delete your own listings!")
	}
	log.Audit(c, "listing.delete", map[string]any{"listing": id})
	return c.JSON("Listing has been deleted!")
}
