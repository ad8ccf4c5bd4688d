package handlers

import (
	"errors"
	"strconv"

	"github.com/daehyun/goalcoach-api/internal/metrics"
	"github.com/daehyun/goalcoach-api/internal/middleware"
	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func RecordProgress(agg *progress.Aggregator, stats *progress.Stats, mc *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)

		var req models.CreateProgressLogRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		entry, err := agg.RecordProgress(c.UserContext(), userID, req)
		if err != nil {
			if errors.Is(err, models.ErrVersionConflict) {
				mc.RecordVersionConflict()
			}
			return respondDomainError(c, err)
		}

		mc.RecordProgressEvent(entry.LogType)
		stats.Invalidate(userID)
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func GetProgressLogs(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)
		goalID, err := uuid.Parse(c.Params("goalId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal ID",
			})
		}

		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		if limit < 1 || limit > 100 {
			limit = 50
		}

		// Ownership check before reading the ledger.
		if _, err := st.Goals().Get(c.UserContext(), goalID, userID); err != nil {
			return respondDomainError(c, err)
		}

		logs, err := st.Ledger().ListByGoal(c.UserContext(), goalID, limit)
		if err != nil {
			return respondDomainError(c, err)
		}

		return c.JSON(logs)
	}
}
