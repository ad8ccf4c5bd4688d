// Package store defines the persistence contracts the progress engine runs
// against, with a GORM-backed implementation for serving and an in-memory
// implementation for tests.
package store

import (
	"context"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/google/uuid"
)

// GoalStore is keyed storage of Goal records. ConditionalUpdate is the only
// write path for existing goals: it commits the mutation only if the goal's
// version still equals expectedVersion, and returns
// models.ErrVersionConflict otherwise.
type GoalStore interface {
	Get(ctx context.Context, goalID, userID uuid.UUID) (*models.Goal, error)
	ConditionalUpdate(ctx context.Context, goalID uuid.UUID, expectedVersion int, mutate func(*models.Goal)) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, goalID, userID uuid.UUID) error
}

// ProgressLedger is append-only storage of ProgressLog records. ListByGoal
// returns entries newest first.
type ProgressLedger interface {
	Append(ctx context.Context, entry *models.ProgressLog) error
	ListByGoal(ctx context.Context, goalID uuid.UUID, limit int) ([]models.ProgressLog, error)
}

// Store bundles both collaborators. Transact runs fn against a store whose
// writes commit or roll back together, so a conditional goal update and its
// ledger append are never visible half-applied.
type Store interface {
	Goals() GoalStore
	Ledger() ProgressLedger
	Transact(ctx context.Context, fn func(Store) error) error
}
