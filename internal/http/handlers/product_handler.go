package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/catalog"
	"julex/internal/log"
	"julex/internal/services"
	"julex/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func criteria(c *fiber.Ctx) catalog.Criteria {
	cr := catalog.ParseQuery(func(k string) string { return c.Query(k) })
	cr.Search = validate.Q(cr.Search)
	cr.Viewer = viewer(c)
	return cr
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	res, err := h.Catalog.ListProducts(c.UserContext(), criteria(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

// GET /api/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: "not found"})
	}
	item, err := h.Catalog.GetProduct(c.UserContext(), id, viewer(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

// POST /api/products (admin)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "admin.product.create", map[string]any{"product": p.ID, "slug": p.Slug})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id (admin, partial)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: "not found"})
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "admin.product.update", map[string]any{"product": p.ID})
	return c.JSON(p)
}

// DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: "not found"})
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	log.Audit(c, "admin.product.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/admin/products lists inactive products too.
func (h *ProductHandler) AdminList(c *fiber.Ctx) error {
	ps, err := h.Catalog.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": ps})
}
