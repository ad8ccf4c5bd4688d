package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress log event types.
const (
	LogTypeProgress  = "progress"
	LogTypeMilestone = "milestone"
	LogTypeSetback   = "setback"
	LogTypeNote      = "note"
)

// LogTypes are the allowed progress event types.
var LogTypes = map[string]bool{
	LogTypeProgress:  true,
	LogTypeMilestone: true,
	LogTypeSetback:   true,
	LogTypeNote:      true,
}

// ProgressLog is one timestamped event recorded against a goal. Entries are
// append-only; UserID is denormalized from the goal for query convenience.
type ProgressLog struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID `json:"goal_id" gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	LogType     string    `json:"log_type" gorm:"not null"`
	Value       *float64  `json:"value"`
	Description string    `json:"description" gorm:"not null"`
	MoodScore   *int      `json:"mood_score"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *ProgressLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProgressLog DTOs
type CreateProgressLogRequest struct {
	GoalID      uuid.UUID `json:"goal_id" validate:"required"`
	LogType     string    `json:"log_type" validate:"required"`
	Value       *float64  `json:"value"`
	Description string    `json:"description" validate:"required"`
	MoodScore   *int      `json:"mood_score"`
}
