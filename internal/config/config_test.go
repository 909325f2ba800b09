package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("REMINDER_INTERVAL_HOURS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5001" {
		t.Errorf("Port = %q, want 5001", cfg.Port)
	}
	if cfg.DatabaseURL != "todox.db" {
		t.Errorf("DatabaseURL = %q, want todox.db", cfg.DatabaseURL)
	}
	if cfg.TokenTTL != 30*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 720h", cfg.TokenTTL)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("CORSOrigin = %q", cfg.CORSOrigin)
	}
	if cfg.ReminderInterval != 0 {
		t.Errorf("ReminderInterval = %v, want disabled", cfg.ReminderInterval)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("load without JWT_SECRET succeeded")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("REMINDER_INTERVAL_HOURS", "6")
	t.Setenv("CORS_ORIGIN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.ReminderInterval != 6*time.Hour {
		t.Errorf("ReminderInterval = %v, want 6h", cfg.ReminderInterval)
	}
	if cfg.CORSOrigin != "" {
		t.Errorf("explicit empty CORS_ORIGIN should disable CORS, got %q", cfg.CORSOrigin)
	}
}
