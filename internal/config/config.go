package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the API server.
type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	TokenTTL         time.Duration
	CORSOrigin       string
	StaticDir        string
	ReminderInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:             strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:         parseHours(strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS"))),
		CORSOrigin:       strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
		StaticDir:        strings.TrimSpace(os.Getenv("STATIC_DIR")),
		ReminderInterval: parseHours(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_HOURS"))),
	}

	if cfg.Port == "" {
		cfg.Port = "5001"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todox.db"
	}

	if cfg.TokenTTL == 0 {
		// Issued tokens stay valid for 30 days.
		cfg.TokenTTL = 30 * 24 * time.Hour
	}

	if _, set := os.LookupEnv("CORS_ORIGIN"); !set {
		cfg.CORSOrigin = "http://localhost:5173"
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
