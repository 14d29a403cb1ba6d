package config

import (
	"ctchen222/Tic-Tac-Toe-Minimax/internal/validator"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds the server settings, read from the environment.
type Config struct {
	HTTPAddr          string        `validate:"required"`
	RedisAddr         string        `validate:"required"`
	SQLitePath        string        `validate:"required"`
	OtelCollectorAddr string        `validate:"omitempty,hostname_port"`
	OtelStdout        bool
	JWTSecret         string        `validate:"required,min=8"`
	WebDir            string        `validate:"required"`
	ComputerMoveDelay time.Duration `validate:"min=0"`
	LogLevel          slog.Level
}

// Load reads the configuration and applies defaults for unset variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:         getEnv("REDIS_CONNSTRING", "localhost:6379"),
		SQLitePath:        getEnv("SQLITE_PATH", "./master.db"),
		OtelCollectorAddr: os.Getenv("OTEL_COLLECTOR_ADDR"),
		JWTSecret:         getEnv("JWT_SECRET", "my_super_secret_key"),
		WebDir:            getEnv("WEB_DIR", "./web"),
		ComputerMoveDelay: 500 * time.Millisecond,
		LogLevel:          slog.LevelDebug,
	}

	if v := os.Getenv("OTEL_STDOUT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_STDOUT %q: %w", v, err)
		}
		cfg.OtelStdout = b
	}
	if v := os.Getenv("COMPUTER_MOVE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COMPUTER_MOVE_DELAY %q: %w", v, err)
		}
		cfg.ComputerMoveDelay = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
