package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/google/uuid"
)

// Memory is an in-memory Store used by tests and local experiments. Writes
// inside Transact are serialized by a single writer lock, which is enough to
// give the same visible atomicity as the database transaction.
type Memory struct {
	txMu sync.Mutex

	mu    sync.Mutex
	goals map[uuid.UUID]models.Goal
	logs  []models.ProgressLog
}

func NewMemory() *Memory {
	return &Memory{goals: make(map[uuid.UUID]models.Goal)}
}

func (m *Memory) Goals() GoalStore {
	return (*memGoals)(m)
}

func (m *Memory) Ledger() ProgressLedger {
	return (*memLedger)(m)
}

func (m *Memory) Transact(ctx context.Context, fn func(Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

type memGoals Memory

func (m *memGoals) Get(ctx context.Context, goalID, userID uuid.UUID) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[goalID]
	if !ok || goal.UserID != userID {
		return nil, models.ErrGoalNotFound
	}
	g := goal
	return &g, nil
}

func (m *memGoals) ConditionalUpdate(ctx context.Context, goalID uuid.UUID, expectedVersion int, mutate func(*models.Goal)) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[goalID]
	if !ok {
		return nil, models.ErrGoalNotFound
	}
	if goal.Version != expectedVersion {
		return nil, models.ErrVersionConflict
	}
	mutate(&goal)
	goal.Version = expectedVersion + 1
	goal.UpdatedAt = time.Now().UTC()
	m.goals[goalID] = goal
	g := goal
	return &g, nil
}

func (m *memGoals) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var goals []models.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
	return goals, nil
}

func (m *memGoals) Create(ctx context.Context, goal *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now().UTC()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now
	m.goals[goal.ID] = *goal
	return nil
}

func (m *memGoals) Delete(ctx context.Context, goalID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.goals[goalID]
	if !ok || goal.UserID != userID {
		return models.ErrGoalNotFound
	}
	delete(m.goals, goalID)
	return nil
}

type memLedger Memory

func (m *memLedger) Append(ctx context.Context, entry *models.ProgressLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *memLedger) ListByGoal(ctx context.Context, goalID uuid.UUID, limit int) ([]models.ProgressLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var logs []models.ProgressLog
	// Walk backwards so entries with equal timestamps come out newest
	// insertion first, matching the descending ledger order.
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].GoalID == goalID {
			logs = append(logs, m.logs[i])
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
