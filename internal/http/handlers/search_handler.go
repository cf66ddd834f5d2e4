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

// SearchHandler serves the server-rendered pages.
type SearchHandler struct {
	Listings *services.ListingService
}

func (h *SearchHandler) Home(c *fiber.Ctx) error {
	sections := []struct {
		Title string
		Crit  query.Criteria
	}{
		{Title: "Recent offers", Crit: query.Criteria{Offer: true}},
		{Title: "Recent equipment for rent", Crit: query.Criteria{Type: domain.TypeRent}},
		{Title: "Recent equipment for sale", Crit: query.Criteria{Type: domain.TypeSale}},
	}
	data := make([]fiber.Map, 0, len(sections))
	for _, s := range sections {
		s.Crit.Sort = query.DefaultSort()
		s.Crit.Limit = 4
		ls, err := h.Listings.Search(c.UserContext(), s.Crit)
		if err != nil {
			log.Error(c, "home.section.error", err, map[string]any{"section": s.Title})
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load listings. Please retry."})
		}
		data = append(data, fiber.Map{
			"Title":    s.Title,
			"Listings": ls,
			"More":     "/search?" + query.Encode(s.Crit).Encode(),
		})
	}
	return render(c, "home", fiber.Map{"Sections": data})
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	crit := query.Build(queryParams{c})
	ls, err := h.Listings.Search(c.UserContext(), crit)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	data := fiber.Map{
		"C":          crit,
		"Listings":   ls,
		"Count":      len(ls),
		"Categories": domain.Categories,
		"Conditions": domain.Conditions,
	}
	// a full page suggests there may be more
	if len(ls) == crit.Limit {
		next := crit
		next.StartIndex += crit.Limit
		data["Next"] = "/search?" + query.Encode(next).Encode()
	}
	return render(c, "search", data)
}

func (h *SearchHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "listing"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	l, err := h.Listings.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	if err != nil {
		log.Error(c, "listing.detail.error", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load this listing. Please retry."})
	}
	return render(c, "listing", fiber.Map{"L": l})
}
