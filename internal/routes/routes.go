package routes

import (
	"net/http"

	"github.com/daehyun/goalcoach-api/internal/config"
	"github.com/daehyun/goalcoach-api/internal/handlers"
	"github.com/daehyun/goalcoach-api/internal/metrics"
	"github.com/daehyun/goalcoach-api/internal/middleware"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/daehyun/goalcoach-api/internal/store"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
)

// Deps is everything the route table wires into handlers.
type Deps struct {
	Config         *config.Config
	Store          store.Store
	Aggregator     *progress.Aggregator
	Stats          *progress.Stats
	Coach          *progress.Coach
	Metrics        *metrics.Collector
	MetricsHandler http.Handler
}

func Setup(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	if d.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.MetricsHandler))
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register(d.Config.JWTSecret))
	auth.Post("/login", handlers.Login(d.Config.JWTSecret))

	protected := api.Group("/", middleware.Protected(d.Config.JWTSecret))

	protected.Get("/me", handlers.GetMe())

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals(d.Store))
	goals.Post("/", handlers.CreateGoal(d.Store, d.Stats))
	goals.Get("/:id", handlers.GetGoal(d.Store))
	goals.Put("/:id", handlers.UpdateGoal(d.Store, d.Stats))
	goals.Delete("/:id", handlers.DeleteGoal(d.Store, d.Stats))

	prog := protected.Group("/progress")
	prog.Post("/", handlers.RecordProgress(d.Aggregator, d.Stats, d.Metrics))
	prog.Get("/goal/:goalId", handlers.GetProgressLogs(d.Store))

	protected.Get("/dashboard/stats", handlers.GetDashboardStats(d.Stats))

	coaching := protected.Group("/coaching")
	coaching.Get("/get-coaching/:goalId", handlers.GetCoaching(d.Coach, d.Metrics))
}
