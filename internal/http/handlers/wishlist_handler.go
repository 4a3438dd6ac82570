package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/services"
	"julex/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/wishlist accepts the same query parameters as the product list.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	res, err := h.Wish.List(c.UserContext(), criteria(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

// POST /api/wishlist
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	pid, ok := validate.ID(in.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	if err := h.Wish.Save(c.UserContext(), viewer(c), pid); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/wishlist/:productId
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Wish.Unsave(c.UserContext(), viewer(c), pid); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
