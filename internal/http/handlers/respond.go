package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"julex/internal/domain"
	applog "julex/internal/log"
	"julex/internal/services"
)

type errorBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
	// set for 409 stock conflicts
	ProductID string `json:"productId,omitempty"`
	Requested int    `json:"requested,omitempty"`
	Available *int   `json:"available,omitempty"`
}

// fail maps domain errors onto status codes. Anything unrecognised goes to
// the app ErrorHandler, which logs it and answers with a generic 500.
func fail(c *fiber.Ctx, err error) error {
	var (
		verr  *domain.ValidationError
		stock *domain.StockError
	)
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"fields": verr.Fields})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorBody{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &stock):
		avail := stock.Available
		return c.Status(fiber.StatusConflict).JSON(errorBody{
			Error: "insufficient stock", ProductID: stock.ProductID, Requested: stock.Requested, Available: &avail,
		})
	case errors.Is(err, domain.ErrCartChanged):
		return c.Status(fiber.StatusConflict).JSON(errorBody{Error: "your cart changed, please review it and try again"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidCriteria):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: "page and limit must be positive"})
	case errors.Is(err, services.ErrAuthRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: "login required"})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: "invalid email or password"})
	}
	return err
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{Error: msg})
}

// ErrorHandler logs and hides internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, nil)
		}
		return c.Status(fe.Code).JSON(errorBody{Error: fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Error: "Something went wrong. Please try again."})
}
