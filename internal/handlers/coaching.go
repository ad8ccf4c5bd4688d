package handlers

import (
	"github.com/daehyun/goalcoach-api/internal/database"
	"github.com/daehyun/goalcoach-api/internal/metrics"
	"github.com/daehyun/goalcoach-api/internal/middleware"
	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetCoaching(coach *progress.Coach, mc *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)
		goalID, err := uuid.Parse(c.Params("goalId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal ID",
			})
		}

		messageType := c.Query("message_type", "daily")

		message, err := coach.GetCoachingMessage(c.UserContext(), goalID, userID, messageType)
		if err != nil {
			return respondDomainError(c, err)
		}

		mc.RecordCoachingMessage(message.Category)
		logInteraction(userID, goalID, message)

		return c.JSON(message)
	}
}

// logInteraction keeps an audit row for every coaching message served.
// Best-effort: a failed write never blocks the response. No-op without a
// database connection (memory-backed setups).
func logInteraction(userID, goalID uuid.UUID, message *models.CoachingMessage) {
	if database.DB == nil {
		return
	}
	database.DB.Create(&models.CoachingInteraction{
		UserID:   userID,
		GoalID:   goalID,
		Category: message.Category,
		Message:  message.Message,
	})
}
