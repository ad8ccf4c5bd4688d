package progress

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/google/uuid"
)

// DefaultHistoryLimit is how many recent ledger entries the coach inspects
// when classifying a goal's trajectory.
const DefaultHistoryLimit = 10

// Coach classifies a goal's recent trajectory into a coaching category and
// renders one message from that category's pool. The random generator is
// injected so selection is reproducible under a fixed seed.
type Coach struct {
	store        store.Store
	historyLimit int
	now          func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCoach(s store.Store, historyLimit int, rng *rand.Rand) *Coach {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Coach{store: s, historyLimit: historyLimit, now: time.Now, rng: rng}
}

// GetCoachingMessage classifies the goal and renders one message. An empty
// progress history is not an error; it classifies as neutral.
func (c *Coach) GetCoachingMessage(ctx context.Context, goalID, userID uuid.UUID, messageType string) (*models.CoachingMessage, error) {
	goal, err := c.store.Goals().Get(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	history, err := c.store.Ledger().ListByGoal(ctx, goalID, c.historyLimit)
	if err != nil {
		return nil, err
	}

	category := Classify(goal, history)
	return &models.CoachingMessage{
		Message:   c.render(category, goal),
		Category:  category,
		Type:      messageType,
		CreatedAt: c.now(),
	}, nil
}

// Classify maps a goal and its recent history (newest first) to a coaching
// category. Rules are evaluated in order; the first match wins.
func Classify(goal *models.Goal, history []models.ProgressLog) string {
	if goal.Status == models.GoalStatusCompleted {
		return models.CoachingCelebration
	}
	if len(history) >= 2 &&
		history[0].LogType == models.LogTypeMilestone &&
		history[1].LogType == models.LogTypeMilestone {
		return models.CoachingCelebration
	}
	if stalledAndLowMood(history) {
		return models.CoachingWarning
	}
	if Ratio(goal.CurrentValue, goal.TargetValue) >= 0.5 {
		return models.CoachingEncouragement
	}
	return models.CoachingNeutral
}

// stalledAndLowMood fires when the two most recent valued progress/setback
// entries are non-increasing and the mood scores present in the window
// average 4 or lower. Without any mood signal the rule cannot fire.
func stalledAndLowMood(history []models.ProgressLog) bool {
	var values []float64
	for _, entry := range history {
		if entry.Value == nil {
			continue
		}
		if entry.LogType != models.LogTypeProgress && entry.LogType != models.LogTypeSetback {
			continue
		}
		values = append(values, *entry.Value)
		if len(values) == 2 {
			break
		}
	}
	if len(values) < 2 || values[0] > values[1] {
		return false
	}

	moodSum, moodCount := 0, 0
	for _, entry := range history {
		if entry.MoodScore != nil {
			moodSum += *entry.MoodScore
			moodCount++
		}
	}
	if moodCount == 0 {
		return false
	}
	return float64(moodSum)/float64(moodCount) <= 4
}

func (c *Coach) render(category string, goal *models.Goal) string {
	pool := messagePools[category]
	c.mu.Lock()
	idx := c.rng.Intn(len(pool))
	c.mu.Unlock()
	return pool[idx](goal)
}

type messageTemplate func(*models.Goal) string

var messagePools = map[string][]messageTemplate{
	models.CoachingCelebration: {
		func(g *models.Goal) string {
			return fmt.Sprintf("You did it! \"%s\" is done — take a moment to celebrate. 🎉", g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Incredible work! You reached %.1f %s on \"%s\". What's next?", g.CurrentValue, g.Unit, g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Milestone after milestone on \"%s\". This is what momentum looks like! 🏆", g.Title)
		},
	},
	models.CoachingWarning: {
		func(g *models.Goal) string {
			return fmt.Sprintf("Progress on \"%s\" has stalled lately. Small steps still count — what's one thing you can do today?", g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Rough patch on \"%s\"? Setbacks are part of the journey. Try shrinking the next step until it feels easy.", g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("You're at %.0f%% on \"%s\" and it's been a grind. Be kind to yourself and restart small.", Ratio(g.CurrentValue, g.TargetValue)*100, g.Title)
		},
	},
	models.CoachingEncouragement: {
		func(g *models.Goal) string {
			return fmt.Sprintf("You're %.0f%% of the way to \"%s\". Keep the pace! 💪", Ratio(g.CurrentValue, g.TargetValue)*100, g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Only %.1f %s to go on \"%s\" — you've got this.", g.TargetValue-g.CurrentValue, g.Unit, g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Past the halfway mark on \"%s\". The second half is where it gets good. ✨", g.Title)
		},
	},
	models.CoachingNeutral: {
		func(g *models.Goal) string {
			return fmt.Sprintf("Every entry counts. Log your next step on \"%s\" whenever you're ready.", g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Showing up daily matters more than big jumps. \"%s\" is waiting for its next update.", g.Title)
		},
		func(g *models.Goal) string {
			return fmt.Sprintf("Steady as it goes on \"%s\". A quick progress note keeps the habit alive.", g.Title)
		},
	},
}
