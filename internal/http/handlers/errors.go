package handlers

import (
	"errors"

	applog "streetsupply/internal/log"
	"streetsupply/internal/services"

	"github.com/gofiber/fiber/v2"
)

const friendly = "Something went wrong. Please try again."

// fail maps a service error onto a JSON response. Store failures are logged in
// full and answered with a generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "field": verr.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg, "field": verr.Field})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoProfile):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "access.denied", map[string]any{"action": action})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyOffered), errors.Is(err, services.ErrOfferClosed):
		applog.Info(c, action+".conflict", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendly})
	}
}

func badBody(c *fiber.Ctx) error {
	applog.Security(c, "validation.fail", map[string]any{"field": "body"})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
}
