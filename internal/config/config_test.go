package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/clinic")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.CompletionModel != "mistralai/mistral-7b-instruct" {
		t.Errorf("CompletionModel = %q", cfg.CompletionModel)
	}
	if cfg.TriageTimeout() != 8*time.Second {
		t.Errorf("TriageTimeout = %v, want 8s", cfg.TriageTimeout())
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
}

func TestValidate_ProductionNeedsJWTSecret(t *testing.T) {
	cfg := &Config{Env: "production", TriageTimeoutMS: 5000, JWTTTLHours: 12}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_RejectsBadBounds(t *testing.T) {
	cfg := &Config{Env: "development", TriageTimeoutMS: 0, JWTTTLHours: 12}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero triage timeout")
	}
	cfg = &Config{Env: "development", TriageTimeoutMS: 5000, JWTTTLHours: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero token TTL")
	}
}
