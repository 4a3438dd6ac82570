package handlers

import (
	"github.com/gofiber/fiber/v2"

	"julex/internal/log"
	"julex/internal/services"
)

type ResellerHandler struct {
	Resellers *services.ResellerService
}

// POST /api/reseller/apply
func (h *ResellerHandler) Apply(c *fiber.Ctx) error {
	var in services.ResellerApplication
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	u, err := h.Resellers.Apply(c.UserContext(), currentUser(c).ID, in)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "reseller.apply", map[string]any{"business": in.BusinessName})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u})
}

// GET /api/reseller/dashboard
func (h *ResellerHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.Resellers.Dashboard(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": d, "verified": viewer(c).IsVerifiedReseller()})
}
