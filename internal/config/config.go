package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/repository"
	"github.com/gkrishna247/lendit-p2p-market/utils"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	SessionMemory = "memory"
	SessionRedis  = "redis"

	devJWTSecret = "lendit-insecure-dev-secret"
)

type Config struct {
	Port           string
	StoreDriver    string
	DB             *repository.DBConfig
	SessionBackend string
	RedisAddr      string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
	SeedDemoData   bool
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		StoreDriver: strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreMemory)),
		DB: &repository.DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvAsIntOrDefault("DB_PORT", 5432),
			UserName: getEnvOrDefault("DB_USERNAME", "lendit"),
			Password: getEnvOrDefault("DB_PASSWORD", "lendit"),
			DBName:   getEnvOrDefault("DB_NAME", "lendit"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		SessionBackend: strings.ToLower(getEnvOrDefault("SESSION_BACKEND", SessionMemory)),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", devJWTSecret),
		TokenTTL:       getEnvAsDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		SeedDemoData:   getEnvAsBoolOrDefault("SEED_DEMO_DATA", false),
	}

	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.SessionBackend {
	case SessionMemory, SessionRedis:
	default:
		return nil, fmt.Errorf("config: unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.JWTSecret == devJWTSecret {
		utils.Warn("JWT_SECRET is not set, using an insecure development secret", nil)
	}

	return cfg, nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	utils.Info("Environment variable is not set, using default value", map[string]any{"key": key})
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		utils.Warn("Environment variable is not an integer, using default value", map[string]any{"key": key})
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		utils.Warn("Environment variable is not a duration, using default value", map[string]any{"key": key})
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		utils.Warn("Environment variable is not a boolean, using default value", map[string]any{"key": key})
	}
	return defaultValue
}
