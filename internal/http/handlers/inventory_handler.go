package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/log"
	"julex/internal/services"
	"julex/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/products/:id/availability
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return badRequest(c, "invalid product id")
	}
	a, err := h.Inv.CheckAvailability(c.UserContext(), pid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

// GET /api/admin/inventory
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.Inv.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": rows})
}

// PUT /api/admin/inventory/:id
func (h *InventoryHandler) Set(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var in struct {
		Qty *int `json:"qty"`
	}
	if err := c.BodyParser(&in); err != nil || in.Qty == nil {
		return badRequest(c, "qty is required")
	}
	if err := h.Inv.SetStock(c.UserContext(), pid, *in.Qty); err != nil {
		return fail(c, err)
	}
	log.Audit(c, "admin.inventory.save", map[string]any{"product": pid, "qty": *in.Qty})
	return c.JSON(services.Availability(*in.Qty))
}
