package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"potlogic/engine"
	"potlogic/internal/cache"
	"potlogic/internal/db"
)

// Config holds all configuration values for the application
type Config struct {
	// Database configuration
	DBConfig db.Config

	// Optional shared equity cache
	RedisEnabled bool
	RedisConfig  cache.Config

	// Engine tunables
	EngineConfig engine.Config

	// Server configuration
	ServerPort  string
	Environment string

	// Authentication. APIKeyHash empty leaves all endpoints open.
	JWTSecret  string
	APIKeyHash string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() Config {
	// Load .env file if it exists
	godotenv.Load()

	engineCfg := engine.DefaultConfig()
	engineCfg.MonteCarloSamples = getEnvInt("ENGINE_SAMPLES", engineCfg.MonteCarloSamples)
	engineCfg.ExactEnumerationLimit = getEnvInt("ENGINE_EXACT_LIMIT", engineCfg.ExactEnumerationLimit)
	engineCfg.EquityCacheSize = getEnvInt("ENGINE_CACHE_SIZE", engineCfg.EquityCacheSize)
	if ms := getEnvInt("ENGINE_SAMPLE_BUDGET_MS", 0); ms > 0 {
		engineCfg.SampleBudget = time.Duration(ms) * time.Millisecond
	}

	return Config{
		DBConfig: db.Config{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "potlogic.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "potlogic"),
		},
		RedisEnabled: getEnv("REDIS_ENABLED", "false") == "true",
		RedisConfig: cache.Config{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 3600)) * time.Second,
		},
		EngineConfig: engineCfg,
		ServerPort:   getEnv("SERVER_PORT", "8000"),
		Environment:  getEnv("ENV", "development"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		APIKeyHash:   getEnv("API_KEY_HASH", ""),
	}
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable or returns a fallback
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
