package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daehyun/goalcoach-api/internal/config"
	"github.com/daehyun/goalcoach-api/internal/database"
	"github.com/daehyun/goalcoach-api/internal/metrics"
	"github.com/daehyun/goalcoach-api/internal/progress"
	"github.com/daehyun/goalcoach-api/internal/routes"
	"github.com/daehyun/goalcoach-api/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	st := store.NewGorm(database.DB)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Setup(app, routes.Deps{
		Config:         cfg,
		Store:          st,
		Aggregator:     progress.NewAggregator(st),
		Stats:          progress.NewStats(st, cfg.StatsCacheTTL),
		Coach:          progress.NewCoach(st, cfg.CoachingHistoryLimit, rng),
		Metrics:        collector,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	log.Println("Listening on port " + cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
