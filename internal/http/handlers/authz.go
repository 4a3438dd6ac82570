package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"julex/internal/domain"
	applog "julex/internal/log"
	"julex/internal/services"
)

const sessionCookie = "sid"

func token(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies(sessionCookie)
}

// Authenticate attaches the session user (if any) and the pricing viewer to
// the request. It never rejects; the Require* guards do that.
func Authenticate(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := domain.Anonymous()
		if sid := token(c); sid != "" {
			u, err := auth.CurrentUser(c.UserContext(), sid)
			switch {
			case err == nil:
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
				v = u.Viewer()
			case errors.Is(err, domain.ErrNotFound):
				applog.Security(c, "auth.session.unknown", nil)
			default:
				return err
			}
		}
		c.Locals("viewer", v)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func viewer(c *fiber.Ctx) domain.Viewer {
	if v, ok := c.Locals("viewer").(domain.Viewer); ok {
		return v
	}
	return domain.Anonymous()
}

// RequireUser enforces that a user is logged in.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			applog.Security(c, "access.denied.anonymous", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: "login required"})
		}
		return c.Next()
	}
}

func requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			applog.Security(c, "access.denied."+role, nil)
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: "login required"})
		}
		if u.Role != role {
			applog.Security(c, "access.denied."+role, map[string]any{"role": u.Role})
			return c.Status(fiber.StatusForbidden).JSON(errorBody{Error: "access denied"})
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler    { return requireRole(domain.RoleAdmin) }
func RequireReseller() fiber.Handler { return requireRole(domain.RoleReseller) }
