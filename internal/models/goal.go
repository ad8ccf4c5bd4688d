package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal lifecycle statuses.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

// GoalCategories are the allowed goal categories.
var GoalCategories = map[string]bool{
	"health":    true,
	"education": true,
	"career":    true,
	"personal":  true,
	"finance":   true,
}

// GoalPriorities are the allowed goal priorities.
var GoalPriorities = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}

// GoalStatuses are the allowed lifecycle statuses.
var GoalStatuses = map[string]bool{
	GoalStatusActive:    true,
	GoalStatusCompleted: true,
	GoalStatusPaused:    true,
	GoalStatusCancelled: true,
}

// Goal is a user-owned quantitative target. CurrentValue may exceed
// TargetValue; display ratios are capped elsewhere. Version is the
// optimistic-lock counter: every committed update increments it, and writers
// must present the version they read.
type Goal struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;index;not null"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description" gorm:"not null"`
	Category     string         `json:"category" gorm:"not null"`
	Priority     string         `json:"priority" gorm:"not null;default:'medium'"`
	TargetValue  float64        `json:"target_value" gorm:"not null"`
	CurrentValue float64        `json:"current_value" gorm:"default:0"`
	Unit         string         `json:"unit"`
	Deadline     time.Time      `json:"deadline"`
	Status       string         `json:"status" gorm:"not null;default:'active'"`
	Version      int            `json:"-" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Category     string    `json:"category" validate:"required"`
	TargetValue  float64   `json:"target_value" validate:"required"`
	CurrentValue float64   `json:"current_value"`
	Unit         string    `json:"unit"`
	Deadline     time.Time `json:"deadline"`
	Priority     string    `json:"priority"`
}

type UpdateGoalRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	TargetValue  *float64   `json:"target_value"`
	CurrentValue *float64   `json:"current_value"`
	Unit         *string    `json:"unit"`
	Deadline     *time.Time `json:"deadline"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
}
