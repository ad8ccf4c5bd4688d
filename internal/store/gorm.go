package store

import (
	"context"
	"errors"
	"time"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gorm is the database-backed Store. The same type serves both the request
// path (bound to the root *gorm.DB) and transactions (bound to a tx handle).
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) Goals() GoalStore {
	return &gormGoals{db: s.db}
}

func (s *Gorm) Ledger() ProgressLedger {
	return &gormLedger{db: s.db}
}

func (s *Gorm) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx})
	})
}

type gormGoals struct {
	db *gorm.DB
}

func (s *gormGoals) Get(ctx context.Context, goalID, userID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrGoalNotFound
	}
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "goal get", Err: err}
	}
	return &goal, nil
}

func (s *gormGoals) ConditionalUpdate(ctx context.Context, goalID uuid.UUID, expectedVersion int, mutate func(*models.Goal)) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).Where("id = ?", goalID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrGoalNotFound
	}
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "goal read for update", Err: err}
	}
	if goal.Version != expectedVersion {
		return nil, models.ErrVersionConflict
	}

	mutate(&goal)
	goal.Version = expectedVersion + 1
	goal.UpdatedAt = time.Now().UTC()

	// The version guard in the WHERE clause is what makes this safe under
	// concurrent writers: a racing commit bumps the version and this UPDATE
	// matches zero rows.
	res := s.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND version = ?", goalID, expectedVersion).
		Updates(map[string]interface{}{
			"title":         goal.Title,
			"description":   goal.Description,
			"category":      goal.Category,
			"priority":      goal.Priority,
			"target_value":  goal.TargetValue,
			"current_value": goal.CurrentValue,
			"unit":          goal.Unit,
			"deadline":      goal.Deadline,
			"status":        goal.Status,
			"version":       goal.Version,
			"updated_at":    goal.UpdatedAt,
		})
	if res.Error != nil {
		return nil, &models.StoreUnavailableError{Op: "goal update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrVersionConflict
	}
	return &goal, nil
}

func (s *gormGoals) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "goal list", Err: err}
	}
	return goals, nil
}

func (s *gormGoals) Create(ctx context.Context, goal *models.Goal) error {
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return &models.StoreUnavailableError{Op: "goal create", Err: err}
	}
	return nil
}

func (s *gormGoals) Delete(ctx context.Context, goalID, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	if res.Error != nil {
		return &models.StoreUnavailableError{Op: "goal delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return models.ErrGoalNotFound
	}
	return nil
}

type gormLedger struct {
	db *gorm.DB
}

func (s *gormLedger) Append(ctx context.Context, entry *models.ProgressLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return &models.StoreUnavailableError{Op: "ledger append", Err: err}
	}
	return nil
}

func (s *gormLedger) ListByGoal(ctx context.Context, goalID uuid.UUID, limit int) ([]models.ProgressLog, error) {
	var logs []models.ProgressLog
	err := s.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, &models.StoreUnavailableError{Op: "ledger list", Err: err}
	}
	return logs, nil
}
