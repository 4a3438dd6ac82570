package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/catalog"
	"julex/internal/services"
	"julex/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

type suggestion struct {
	ID    string  `json:"id"`
	Slug  string  `json:"slug"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

const suggestLimit = 5

// GET /api/search?q= returns a handful of name matches for type-ahead.
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	q := validate.Q(c.Query("q"))
	out := []suggestion{}
	if q == "" {
		return c.JSON(fiber.Map{"items": out})
	}
	res, err := h.Catalog.ListProducts(c.UserContext(), catalog.Criteria{
		Search: q, Page: 1, Limit: suggestLimit, Sort: catalog.SortName, Viewer: viewer(c),
	})
	if err != nil {
		return fail(c, err)
	}
	for _, it := range res.Items {
		out = append(out, suggestion{ID: it.ID, Slug: it.Slug, Name: it.Name, Price: it.Quote.EffectivePrice})
	}
	return c.JSON(fiber.Map{"items": out})
}
