package handlers

import (
	"errors"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps the engine's typed failures onto HTTP statuses.
func respondDomainError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	var storeErr *models.StoreUnavailableError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Error(),
		})
	case errors.Is(err, models.ErrGoalNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	case errors.Is(err, models.ErrVersionConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Goal was updated concurrently, please retry",
		})
	case errors.As(err, &storeErr):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Storage temporarily unavailable",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
