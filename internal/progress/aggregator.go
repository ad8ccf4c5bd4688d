package progress

import (
	"context"
	"errors"
	"strings"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/google/uuid"
)

// conflictAttempts bounds the optimistic-lock retry loop. Conflicts on a
// single goal are rare enough that three read-modify-write rounds settle
// any realistic race.
const conflictAttempts = 3

// Aggregator applies progress events to goal state. A progress or milestone
// event carrying a value overwrites the goal's current value (the product's
// "edit current value directly" semantics, not a running sum); setbacks and
// notes only feed the ledger.
type Aggregator struct {
	store store.Store
}

func NewAggregator(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// RecordProgress validates the event, mutates the goal when the event type
// implies it and appends the ledger entry. The goal mutation and the append
// ride one transaction; on a version conflict the whole read-modify-write is
// redone with a fresh snapshot, never just the stale ledger row.
func (a *Aggregator) RecordProgress(ctx context.Context, userID uuid.UUID, req models.CreateProgressLogRequest) (*models.ProgressLog, error) {
	if err := validateRecordRequest(req); err != nil {
		return nil, err
	}

	if !mutatesGoal(req) {
		// Ownership still has to hold before anything is recorded.
		if _, err := a.store.Goals().Get(ctx, req.GoalID, userID); err != nil {
			return nil, err
		}
		entry := newEntry(userID, req)
		if err := a.store.Ledger().Append(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}

	for attempt := 0; attempt < conflictAttempts; attempt++ {
		goal, err := a.store.Goals().Get(ctx, req.GoalID, userID)
		if err != nil {
			return nil, err
		}

		entry := newEntry(userID, req)
		err = a.store.Transact(ctx, func(tx store.Store) error {
			if _, err := tx.Goals().ConditionalUpdate(ctx, goal.ID, goal.Version, func(g *models.Goal) {
				g.CurrentValue = *req.Value
				if g.CurrentValue >= g.TargetValue {
					g.Status = models.GoalStatusCompleted
				}
			}); err != nil {
				return err
			}
			return tx.Ledger().Append(ctx, entry)
		})
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, models.ErrVersionConflict
}

// mutatesGoal reports whether the event overwrites the goal's current value.
// Progress and milestone events do, and only when they carry a value.
func mutatesGoal(req models.CreateProgressLogRequest) bool {
	if req.Value == nil {
		return false
	}
	return req.LogType == models.LogTypeProgress || req.LogType == models.LogTypeMilestone
}

func newEntry(userID uuid.UUID, req models.CreateProgressLogRequest) *models.ProgressLog {
	return &models.ProgressLog{
		GoalID:      req.GoalID,
		UserID:      userID,
		LogType:     req.LogType,
		Value:       req.Value,
		Description: req.Description,
		MoodScore:   req.MoodScore,
	}
}

func validateRecordRequest(req models.CreateProgressLogRequest) error {
	if !models.LogTypes[req.LogType] {
		return models.NewValidationError("log_type", "must be one of progress, milestone, setback, note")
	}
	if strings.TrimSpace(req.Description) == "" {
		return models.NewValidationError("description", "is required")
	}
	if req.Value != nil && *req.Value < 0 {
		return models.NewValidationError("value", "must not be negative")
	}
	if req.MoodScore != nil && (*req.MoodScore < 1 || *req.MoodScore > 10) {
		return models.NewValidationError("mood_score", "must be between 1 and 10")
	}
	return nil
}
