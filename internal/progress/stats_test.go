package progress

import (
	"context"
	"testing"
	"time"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/google/uuid"
)

func TestComputeDashboardStatsEmpty(t *testing.T) {
	st := store.NewMemory()
	stats := NewStats(st, 0)

	got, err := stats.ComputeDashboardStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ComputeDashboardStats: %v", err)
	}
	if got.ActiveGoals != 0 || got.CompletedGoals != 0 || got.AverageProgress != 0 {
		t.Errorf("got %+v, want all zeroes", got)
	}
}

func TestComputeDashboardStats(t *testing.T) {
	st := store.NewMemory()
	stats := NewStats(st, 0)
	ctx := context.Background()
	userID := uuid.New()

	seed := func(current, target float64, status string) {
		seedGoal(t, st, &models.Goal{
			UserID:       userID,
			Title:        "g",
			Description:  "d",
			Category:     "personal",
			TargetValue:  target,
			CurrentValue: current,
			Status:       status,
		})
	}

	seed(10, 20, models.GoalStatusActive)
	seed(5, 10, models.GoalStatusActive)
	seed(30, 30, models.GoalStatusCompleted)
	seed(1, 2, models.GoalStatusPaused)
	seed(1, 2, models.GoalStatusCancelled)

	got, err := stats.ComputeDashboardStats(ctx, userID)
	if err != nil {
		t.Fatalf("ComputeDashboardStats: %v", err)
	}
	if got.ActiveGoals != 2 {
		t.Errorf("ActiveGoals = %d, want 2", got.ActiveGoals)
	}
	if got.CompletedGoals != 1 {
		t.Errorf("CompletedGoals = %d, want 1", got.CompletedGoals)
	}
	// (50 + 50) / 2; paused and cancelled goals stay out of the average.
	if got.AverageProgress != 50 {
		t.Errorf("AverageProgress = %d, want 50", got.AverageProgress)
	}
}

func TestComputeDashboardStatsCapsOvershoot(t *testing.T) {
	st := store.NewMemory()
	stats := NewStats(st, 0)
	userID := uuid.New()

	seedGoal(t, st, &models.Goal{
		UserID:       userID,
		Title:        "g",
		Description:  "d",
		Category:     "health",
		TargetValue:  100,
		CurrentValue: 150,
		Status:       models.GoalStatusActive,
	})

	got, err := stats.ComputeDashboardStats(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if got.AverageProgress != 100 {
		t.Errorf("AverageProgress = %d, want 100 (capped)", got.AverageProgress)
	}
}

func TestComputeDashboardStatsRounds(t *testing.T) {
	st := store.NewMemory()
	stats := NewStats(st, 0)
	userID := uuid.New()

	seedGoal(t, st, &models.Goal{
		UserID:       userID,
		Title:        "g",
		Description:  "d",
		Category:     "finance",
		TargetValue:  3,
		CurrentValue: 2,
		Status:       models.GoalStatusActive,
	})

	got, err := stats.ComputeDashboardStats(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	// 66.66... rounds to 67.
	if got.AverageProgress != 67 {
		t.Errorf("AverageProgress = %d, want 67", got.AverageProgress)
	}
}

func TestStatsCacheInvalidation(t *testing.T) {
	st := store.NewMemory()
	stats := NewStats(st, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	seedGoal(t, st, &models.Goal{
		UserID:      userID,
		Title:       "g",
		Description: "d",
		Category:    "career",
		TargetValue: 10,
		Status:      models.GoalStatusActive,
	})

	first, err := stats.ComputeDashboardStats(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if first.ActiveGoals != 1 {
		t.Fatalf("ActiveGoals = %d, want 1", first.ActiveGoals)
	}

	// A write behind the cache's back is invisible until invalidation.
	seedGoal(t, st, &models.Goal{
		UserID:      userID,
		Title:       "g2",
		Description: "d",
		Category:    "career",
		TargetValue: 10,
		Status:      models.GoalStatusActive,
	})

	cached, _ := stats.ComputeDashboardStats(ctx, userID)
	if cached.ActiveGoals != 1 {
		t.Errorf("ActiveGoals = %d, want stale 1 before invalidation", cached.ActiveGoals)
	}

	stats.Invalidate(userID)

	fresh, _ := stats.ComputeDashboardStats(ctx, userID)
	if fresh.ActiveGoals != 2 {
		t.Errorf("ActiveGoals = %d, want 2 after invalidation", fresh.ActiveGoals)
	}
}
