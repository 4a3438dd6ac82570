package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"julex/internal/log"
	"julex/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func setSession(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.Registration
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	u, sid, err := h.Auth.Register(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	setSession(c, sid, time.Time{})
	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.register", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u, "token": sid})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginBody
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	u, sid, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return fail(c, err)
	}
	setSession(c, sid, time.Time{})
	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"user": u, "token": sid})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := token(c); sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			return err
		}
	}
	setSession(c, "", time.Now().Add(-time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": currentUser(c), "viewer": viewer(c).Kind.String()})
}
