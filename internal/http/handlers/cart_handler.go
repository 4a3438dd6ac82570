package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/services"
	"julex/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartBody struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), viewer(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}

// POST /api/cart adds to (or creates) the line for productId.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in cartBody
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	pid, ok := validate.ID(in.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	// quick-add buttons send ?qty= instead of a body field
	qty := validate.Qty(c.Query("qty"))
	if in.Quantity != nil {
		qty = min(*in.Quantity, validate.MaxQty)
	}
	n, err := h.Cart.Add(c.UserContext(), viewer(c), pid, qty)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"productId": pid, "quantity": n})
}

// PUT /api/cart/:productId sets the quantity; 0 removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var in cartBody
	if err := c.BodyParser(&in); err != nil || in.Quantity == nil {
		return badRequest(c, "quantity is required")
	}
	if err := h.Cart.UpdateQuantity(c.UserContext(), viewer(c), pid, *in.Quantity); err != nil {
		return fail(c, err)
	}
	return h.View(c)
}

// DELETE /api/cart/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Cart.Remove(c.UserContext(), viewer(c), pid); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
