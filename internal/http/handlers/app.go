package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "julex/internal/log"
)

type Options struct {
	RateLimit  int // requests per minute per IP; 0 means 120
	LoginLimit int // login attempts per 10 minutes per IP; 0 means 5
	AccessLog  bool
}

// NewApp builds the fiber app with middleware and every /api route.
func NewApp(d *Deps, opt Options) *fiber.App {
	if opt.RateLimit <= 0 {
		opt.RateLimit = 120
	}
	if opt.LoginLimit <= 0 {
		opt.LoginLimit = 5
	}

	app := fiber.New(fiber.Config{
		AppName:      "julex",
		ErrorHandler: ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(recover.New())
	app.Use(requestid.New())
	if opt.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        opt.RateLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(errorBody{Error: "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(Authenticate(d.Auth))

	api := app.Group("/api")

	api.Post("/auth/register", d.AuthHandler.Register)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        opt.LoginLimit,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(errorBody{Error: "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)
	api.Get("/me", RequireUser(), d.AuthHandler.Me)

	// catalog
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/products/:id/availability", d.InventoryHandler.Check)
	api.Get("/search", d.SearchHandler.Suggest)

	// shopper
	u := RequireUser()
	api.Get("/cart", u, d.CartHandler.View)
	api.Post("/cart", u, d.CartHandler.Add)
	api.Put("/cart/:productId", u, d.CartHandler.Update)
	api.Delete("/cart/:productId", u, d.CartHandler.Remove)
	api.Post("/orders", u, d.OrderHandler.Place)
	api.Get("/orders", u, d.OrderHandler.History)
	api.Get("/orders/:id", u, d.OrderHandler.View)
	api.Get("/wishlist", u, d.WishlistHandler.List)
	api.Post("/wishlist", u, d.WishlistHandler.Save)
	api.Delete("/wishlist/:productId", u, d.WishlistHandler.Unsave)
	api.Post("/reseller/apply", u, d.ResellerHandler.Apply)
	api.Get("/reseller/dashboard", RequireReseller(), d.ResellerHandler.Dashboard)

	// admin
	admin := RequireAdmin()
	api.Post("/categories", admin, d.CategoryHandler.Create)
	api.Post("/products", admin, d.ProductHandler.Create)
	api.Put("/products/:id", admin, d.ProductHandler.Update)
	api.Delete("/products/:id", admin, d.ProductHandler.Delete)

	adm := api.Group("/admin", admin)
	adm.Get("/products", d.ProductHandler.AdminList)
	adm.Get("/inventory", d.InventoryHandler.List)
	adm.Put("/inventory/:id", d.InventoryHandler.Set)
	adm.Get("/orders", d.AdminHandler.ListOrders)
	adm.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
	adm.Get("/users", d.AdminHandler.Users)
	adm.Delete("/users/:id", d.AdminHandler.DeleteUser)
	adm.Post("/resellers/:id/verify", d.AdminHandler.VerifyReseller)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: "not found"})
	})
	return app
}
