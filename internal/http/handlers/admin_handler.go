package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "julex/internal/log"
	"julex/internal/services"
	"julex/internal/validate"
)

type AdminHandler struct {
	Orders    *services.OrderService
	Auth      *services.AuthService
	Resellers *services.ResellerService
}

// GET /api/admin/orders?limit=
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	ords, err := h.Orders.AdminList(c.UserContext(), limit)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"items": ords})
}

// POST /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing id")
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Orders.UpdateStatus(c.UserContext(), id, in.Status); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": in.Status})
	return c.JSON(fiber.Map{"id": id, "status": in.Status})
}

// GET /api/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.Auth.ListUsers(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"items": users})
}

// DELETE /api/admin/users/:id removes the account; orders are kept.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing id")
	}
	if err := h.Auth.DeleteUser(c.UserContext(), currentUser(c), id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"target": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/admin/resellers/:id/verify  body {"verified": bool}, default true
func (h *AdminHandler) VerifyReseller(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing id")
	}
	in := struct {
		Verified *bool `json:"verified"`
	}{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "invalid body")
		}
	}
	verified := in.Verified == nil || *in.Verified
	if err := h.Resellers.Verify(c.UserContext(), id, verified); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.resellers.verify", map[string]any{"target": id, "verified": verified})
	return c.JSON(fiber.Map{"id": id, "verified": verified})
}
