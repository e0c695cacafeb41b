package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Addr         string
	DBDSN        string
	JWTSecret    string
	RedisAddr    string
	UserCacheTTL time.Duration
	Location     *time.Location
	LogLevel     zerolog.Level
}

// Load reads the environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:      getEnv("ADDR", ":8080"),
		DBDSN:     os.Getenv("DB_DSN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	ttl, err := time.ParseDuration(getEnv("USER_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("USER_CACHE_TTL: %w", err)
	}
	cfg.UserCacheTTL = ttl

	loc, err := time.LoadLocation(getEnv("REPORT_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
