package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL          string
	JWTSecret            string
	Port                 string
	CoachingHistoryLimit int
	StatsCacheTTL        time.Duration
}

func Load() *Config {
	return &Config{
		DatabaseURL:          getEnv("DATABASE_URL", "goalcoach.db"),
		JWTSecret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:                 getEnv("PORT", "8080"),
		CoachingHistoryLimit: getEnvInt("COACHING_HISTORY_LIMIT", 10),
		StatsCacheTTL:        time.Duration(getEnvInt("STATS_CACHE_TTL_SECONDS", 30)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
