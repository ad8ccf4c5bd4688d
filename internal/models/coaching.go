package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coaching categories assigned by the rule engine before rendering.
const (
	CoachingEncouragement = "encouragement"
	CoachingWarning       = "warning"
	CoachingCelebration   = "celebration"
	CoachingNeutral       = "neutral"
)

// CoachingMessage is a rendered coaching response. It is derived, never
// persisted; CoachingInteraction is the persisted audit of one being served.
type CoachingMessage struct {
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CoachingInteraction records every coaching message served to a user.
type CoachingInteraction struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	GoalID    uuid.UUID `json:"goal_id" gorm:"type:uuid;index;not null"`
	Category  string    `json:"category" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (ci *CoachingInteraction) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// DashboardStats summarizes one user's goal set. AverageProgress covers
// active goals only.
type DashboardStats struct {
	ActiveGoals     int `json:"active_goals"`
	CompletedGoals  int `json:"completed_goals"`
	AverageProgress int `json:"average_progress"`
}
