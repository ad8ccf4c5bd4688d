package progress

import (
	"context"
	"math"
	"time"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/google/uuid"
)

// Stats derives dashboard summaries from the latest goal snapshot. Results
// are cached per user for a short TTL; callers invalidate after any
// successful mutation for that user.
type Stats struct {
	store store.Store
	cache *statsCache
}

func NewStats(s store.Store, ttl time.Duration) *Stats {
	return &Stats{store: s, cache: newStatsCache(ttl)}
}

// ComputeDashboardStats counts active and completed goals and averages the
// capped progress percentage over active goals only. Zero active goals means
// an average of 0, never a division by zero.
func (s *Stats) ComputeDashboardStats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error) {
	if cached, ok := s.cache.get(userID); ok {
		return cached, nil
	}

	goals, err := s.store.Goals().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{}
	var sum float64
	for _, g := range goals {
		switch g.Status {
		case models.GoalStatusActive:
			stats.ActiveGoals++
			sum += Ratio(g.CurrentValue, g.TargetValue) * 100
		case models.GoalStatusCompleted:
			stats.CompletedGoals++
		}
	}
	if stats.ActiveGoals > 0 {
		stats.AverageProgress = int(math.Round(sum / float64(stats.ActiveGoals)))
	}

	s.cache.put(userID, stats)
	return stats, nil
}

// Invalidate drops the cached entry for one user.
func (s *Stats) Invalidate(userID uuid.UUID) {
	s.cache.invalidate(userID)
}
