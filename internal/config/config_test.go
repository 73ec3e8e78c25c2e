package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/grievancehub_test")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected development, got %q", cfg.Environment)
	}
	if cfg.HTTP.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.HTTP.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Escalation.ThresholdDays != 3 {
		t.Fatalf("expected threshold 3 days, got %d", cfg.Escalation.ThresholdDays)
	}
	if cfg.Escalation.CronSpec != "0 0 * * *" {
		t.Fatalf("unexpected cron spec %q", cfg.Escalation.CronSpec)
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DB_DSN is missing")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/grievancehub_test")
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_ACCESS_SECRET is missing")
	}
}
