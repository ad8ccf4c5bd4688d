package handlers

import (
	"errors"

	"github.com/daehyun/goalcoach-api/internal/middleware"
	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// updateAttempts bounds the manual-edit retry loop. Direct goal edits use
// the same conditional-update primitive as progress recording, so they also
// need a couple of rounds under contention.
const updateAttempts = 3

func CreateGoal(st store.Store, stats *progress.Stats) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)

		var req models.CreateGoalRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if req.Title == "" || req.Description == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title and description are required",
			})
		}
		if !models.GoalCategories[req.Category] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid category. Must be: health, education, career, personal, or finance",
			})
		}
		if req.TargetValue <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Target value must be positive",
			})
		}
		if req.CurrentValue < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Current value must not be negative",
			})
		}
		if req.Priority == "" {
			req.Priority = "medium"
		}
		if !models.GoalPriorities[req.Priority] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid priority. Must be: high, medium, or low",
			})
		}

		goal := models.Goal{
			UserID:       userID,
			Title:        req.Title,
			Description:  req.Description,
			Category:     req.Category,
			Priority:     req.Priority,
			TargetValue:  req.TargetValue,
			CurrentValue: req.CurrentValue,
			Unit:         req.Unit,
			Deadline:     req.Deadline,
			Status:       models.GoalStatusActive,
		}

		if err := st.Goals().Create(c.UserContext(), &goal); err != nil {
			return respondDomainError(c, err)
		}

		stats.Invalidate(userID)
		return c.Status(fiber.StatusCreated).JSON(goal)
	}
}

func GetGoals(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)
		statusFilter := c.Query("status")
		categoryFilter := c.Query("category")

		goals, err := st.Goals().ListByUser(c.UserContext(), userID)
		if err != nil {
			return respondDomainError(c, err)
		}

		filtered := make([]models.Goal, 0, len(goals))
		for _, g := range goals {
			if statusFilter != "" && g.Status != statusFilter {
				continue
			}
			if categoryFilter != "" && g.Category != categoryFilter {
				continue
			}
			filtered = append(filtered, g)
		}

		return c.JSON(filtered)
	}
}

func GetGoal(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)
		goalID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal ID",
			})
		}

		goal, err := st.Goals().Get(c.UserContext(), goalID, userID)
		if err != nil {
			return respondDomainError(c, err)
		}

		return c.JSON(goal)
	}
}

// UpdateGoal is the manual-override path: it can rewrite any field,
// including status and current value, and goes through the same
// version-checked update primitive as progress recording.
func UpdateGoal(st store.Store, stats *progress.Stats) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)
		goalID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal ID",
			})
		}

		var req models.UpdateGoalRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if req.Category != nil && !models.GoalCategories[*req.Category] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid category. Must be: health, education, career, personal, or finance",
			})
		}
		if req.Priority != nil && !models.GoalPriorities[*req.Priority] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid priority. Must be: high, medium, or low",
			})
		}
		if req.Status != nil && !models.GoalStatuses[*req.Status] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status. Must be: active, completed, paused, or cancelled",
			})
		}
		if req.TargetValue != nil && *req.TargetValue <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Target value must be positive",
			})
		}
		if req.CurrentValue != nil && *req.CurrentValue < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Current value must not be negative",
			})
		}

		var updated *models.Goal
		for attempt := 0; attempt < updateAttempts; attempt++ {
			goal, err := st.Goals().Get(c.UserContext(), goalID, userID)
			if err != nil {
				return respondDomainError(c, err)
			}

			updated, err = st.Goals().ConditionalUpdate(c.UserContext(), goalID, goal.Version, func(g *models.Goal) {
				applyGoalUpdate(g, req)
			})
			if err == nil {
				break
			}
			if !errors.Is(err, models.ErrVersionConflict) {
				return respondDomainError(c, err)
			}
			updated = nil
		}
		if updated == nil {
			return respondDomainError(c, models.ErrVersionConflict)
		}

		stats.Invalidate(userID)
		return c.JSON(updated)
	}
}

func DeleteGoal(st store.Store, stats *progress.Stats) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)
		goalID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal ID",
			})
		}

		if err := st.Goals().Delete(c.UserContext(), goalID, userID); err != nil {
			return respondDomainError(c, err)
		}

		stats.Invalidate(userID)
		return c.JSON(fiber.Map{"message": "Goal deleted"})
	}
}

func applyGoalUpdate(g *models.Goal, req models.UpdateGoalRequest) {
	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.TargetValue != nil {
		g.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		g.CurrentValue = *req.CurrentValue
	}
	if req.Unit != nil {
		g.Unit = *req.Unit
	}
	if req.Deadline != nil {
		g.Deadline = *req.Deadline
	}
	if req.Priority != nil {
		g.Priority = *req.Priority
	}
	if req.Status != nil {
		g.Status = *req.Status
	}
}
