package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/log"
	"julex/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": cats})
}

// POST /api/categories (admin)
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), in.Name)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "admin.category.create", map[string]any{"slug": cat.Slug})
	return c.Status(fiber.StatusCreated).JSON(cat)
}
