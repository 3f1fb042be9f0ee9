package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Shim (downstream tool-execution service)
	ShimBaseURL string
	ShimTimeout time.Duration

	// Logging
	LogLevel string

	// Request policy
	StrictValidation bool
	RateLimitPerMin  int

	// Redis (optional, backs the rate limiter)
	RedisURL string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "3000"),
		Env:              getEnvOrDefault("ENV", "development"),
		ShimBaseURL:      strings.TrimRight(getEnvOrDefault("SHIM_BASE_URL", "http://127.0.0.1:8003"), "/"),
		ShimTimeout:      time.Duration(getEnvAsIntOrDefault("SHIM_TIMEOUT_SECONDS", 0)) * time.Second,
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		StrictValidation: getEnvAsBoolOrDefault("STRICT_VALIDATION", false),
		RateLimitPerMin:  getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 0),
		RedisURL:         getEnvOrDefault("REDIS_URL", ""),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return defaultVal
	}
	return b
}
