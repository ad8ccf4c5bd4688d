package handlers

import (
	"github.com/daehyun/goalcoach-api/internal/middleware"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/gofiber/fiber/v2"
)

func GetDashboardStats(stats *progress.Stats) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)

		result, err := stats.ComputeDashboardStats(c.UserContext(), userID)
		if err != nil {
			return respondDomainError(c, err)
		}

		return c.JSON(result)
	}
}
