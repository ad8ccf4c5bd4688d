package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daehyun/goalcoach-api/internal/config"
	"github.com/daehyun/goalcoach-api/internal/metrics"
	"github.com/daehyun/goalcoach-api/internal/middleware"
	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/daehyun/goalcoach-api/internal/routes"
	"github.com/daehyun/goalcoach-api/internal/store"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T, st store.Store) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:            testSecret,
		CoachingHistoryLimit: 10,
		StatsCacheTTL:        time.Hour,
	}

	app := fiber.New()
	routes.Setup(app, routes.Deps{
		Config:     cfg,
		Store:      st,
		Aggregator: progress.NewAggregator(st),
		Stats:      progress.NewStats(st, cfg.StatsCacheTTL),
		Coach:      progress.NewCoach(st, cfg.CoachingHistoryLimit, rand.New(rand.NewSource(1))),
		Metrics:    metrics.NewCollector(prometheus.NewRegistry()),
	})
	return app
}

func authedRequest(t *testing.T, method, target string, userID uuid.UUID, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := middleware.GenerateToken(testSecret, userID, "user@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func seedGoal(t *testing.T, st store.Store, goal *models.Goal) *models.Goal {
	t.Helper()
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}
	if err := st.Goals().Create(context.Background(), goal); err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	return goal
}

func TestRecordProgressEndpoint(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)
	userID := uuid.New()

	goal := seedGoal(t, st, &models.Goal{
		UserID:      userID,
		Title:       "Run streak",
		Description: "30 days running",
		Category:    "health",
		TargetValue: 30,
		Unit:        "일",
	})

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/progress/", userID, fiber.Map{
		"goal_id":     goal.ID,
		"log_type":    "progress",
		"value":       30,
		"description": "streak complete",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	entry := decode[models.ProgressLog](t, resp)
	if entry.LogType != models.LogTypeProgress {
		t.Errorf("log_type = %q", entry.LogType)
	}
	if entry.Value == nil || *entry.Value != 30 {
		t.Errorf("value = %v, want 30", entry.Value)
	}

	got, _ := st.Goals().Get(context.Background(), goal.ID, userID)
	if got.Status != models.GoalStatusCompleted {
		t.Errorf("goal status = %q, want completed", got.Status)
	}
}

func TestRecordProgressEndpointValidation(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)
	userID := uuid.New()

	goal := seedGoal(t, st, &models.Goal{
		UserID:      userID,
		Title:       "g",
		Description: "d",
		Category:    "personal",
		TargetValue: 10,
	})

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/progress/", userID, fiber.Map{
		"goal_id":     goal.ID,
		"log_type":    "progress",
		"value":       -1,
		"description": "negative",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRecordProgressEndpointNotFound(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/progress/", uuid.New(), fiber.Map{
		"goal_id":     uuid.New(),
		"log_type":    "progress",
		"value":       1,
		"description": "nowhere",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)
	userID := uuid.New()

	seedGoal(t, st, &models.Goal{
		UserID: userID, Title: "A", Description: "d", Category: "health",
		TargetValue: 20, CurrentValue: 10,
	})
	seedGoal(t, st, &models.Goal{
		UserID: userID, Title: "B", Description: "d", Category: "finance",
		TargetValue: 10, CurrentValue: 5,
	})

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/dashboard/stats", userID, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	stats := decode[models.DashboardStats](t, resp)
	if stats.ActiveGoals != 2 {
		t.Errorf("active_goals = %d, want 2", stats.ActiveGoals)
	}
	if stats.AverageProgress != 50 {
		t.Errorf("average_progress = %d, want 50", stats.AverageProgress)
	}
}

func TestCoachingEndpoint(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)
	userID := uuid.New()

	goal := seedGoal(t, st, &models.Goal{
		UserID:      userID,
		Title:       "Quiet goal",
		Description: "no logs yet",
		Category:    "education",
		TargetValue: 10,
	})

	target := fmt.Sprintf("/api/coaching/get-coaching/%s?message_type=daily", goal.ID)
	resp, err := app.Test(authedRequest(t, http.MethodGet, target, userID, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	msg := decode[models.CoachingMessage](t, resp)
	if msg.Category != models.CoachingNeutral {
		t.Errorf("category = %q, want neutral", msg.Category)
	}
	if msg.Message == "" {
		t.Error("empty message")
	}
}

func TestCoachingEndpointForeignGoal(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)

	goal := seedGoal(t, st, &models.Goal{
		UserID:      uuid.New(),
		Title:       "Someone else's",
		Description: "d",
		Category:    "career",
		TargetValue: 10,
	})

	target := fmt.Sprintf("/api/coaching/get-coaching/%s", goal.ID)
	resp, err := app.Test(authedRequest(t, http.MethodGet, target, uuid.New(), nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGoalCRUDEndpoints(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)
	userID := uuid.New()

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/goals/", userID, fiber.Map{
		"title":        "Learn Spanish",
		"description":  "reach B1",
		"category":     "education",
		"target_value": 100,
		"unit":         "lessons",
		"priority":     "high",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decode[models.Goal](t, resp)
	if created.Status != models.GoalStatusActive {
		t.Errorf("status = %q, want active", created.Status)
	}

	// Manual override: pause the goal through the update path.
	resp, err = app.Test(authedRequest(t, http.MethodPut, "/api/goals/"+created.ID.String(), userID, fiber.Map{
		"status": "paused",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	updated := decode[models.Goal](t, resp)
	if updated.Status != models.GoalStatusPaused {
		t.Errorf("status = %q, want paused", updated.Status)
	}

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/goals/?status=paused", userID, nil))
	if err != nil {
		t.Fatal(err)
	}
	listed := decode[[]models.Goal](t, resp)
	if len(listed) != 1 {
		t.Fatalf("listed %d goals, want 1", len(listed))
	}

	resp, err = app.Test(authedRequest(t, http.MethodDelete, "/api/goals/"+created.ID.String(), userID, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/goals/"+created.ID.String(), userID, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateGoalRejectsBadCategory(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/goals/", uuid.New(), fiber.Map{
		"title":        "x",
		"description":  "y",
		"category":     "sports",
		"target_value": 10,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	st := store.NewMemory()
	app := newTestApp(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
