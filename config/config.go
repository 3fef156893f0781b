// Package config provides configuration for the assistant service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the assistant configuration.
type Config struct {
	// Server settings
	Env      string
	HTTPPort int

	// Database
	DatabaseURL  string
	SeedDemoData bool

	// Response cache
	CacheBackend  string // "sqlite" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// External AI fallback
	AIBaseURL         string
	AIAPIKey          string
	AIModel           string
	AITimeout         time.Duration
	AIContextMessages int

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:       getEnv("DATABASE_URL", "file:assistant.db?cache=shared&mode=rwc"),
		SeedDemoData:      getEnv("SEED_DEMO_DATA", "") != "",
		CacheBackend:      getEnv("CACHE_BACKEND", "sqlite"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		AIBaseURL:         getEnv("AI_BASE_URL", "http://localhost:4000"),
		AIAPIKey:          getEnv("AI_API_KEY", ""),
		AIModel:           getEnv("AI_MODEL", "gpt-4o-mini"),
		AITimeout:         time.Duration(getEnvInt("AI_TIMEOUT_MS", 30000)) * time.Millisecond,
		AIContextMessages: getEnvInt("AI_CONTEXT_MESSAGES", 10),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         getEnv("LOG_PRETTY", "") != "",
	}
	return cfg
}

// IsDev reports whether the service runs in a development environment.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
