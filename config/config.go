package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	ServerPort      string
	ShutdownTimeout time.Duration
}

// Load builds the configuration from the environment. The JWT secret has no
// development default: a process without one must not come up.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/hrms"),
		JWTSecret:       secret,
		TokenTTL:        8 * time.Hour,
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ShutdownTimeout: 10 * time.Second,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
