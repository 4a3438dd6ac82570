package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/log"
	"julex/internal/services"
	"julex/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /api/orders checks the cart out. Totals are always recomputed from
// the stored cart; any prices in the body are ignored.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	o, err := h.Order.Checkout(c.UserContext(), viewer(c), in)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "order.place", map[string]any{"order_id": o.ID, "type": o.OrderType, "total": o.Total})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.List(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": orders})
}

// GET /api/orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: "not found"})
	}
	o, err := h.Order.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(o)
}
