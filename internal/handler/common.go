package handler

import (
	"go-shop-pos/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// sessionUserID reads the authenticated user set by the auth middleware.
func sessionUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(401, "Unauthorized")
	}
	return uuid.Parse(raw)
}

// fail maps a domain error onto the HTTP status taxonomy.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case apperr.IsValidation(err):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsNotFound(err):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsInsufficientStock(err):
		stockErr, _ := apperr.AsInsufficientStock(err)
		return c.Status(409).JSON(fiber.Map{
			"error":     err.Error(),
			"available": stockErr.Available,
		})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
