package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_RemoteDefaults(t *testing.T) {
	t.Setenv("BACKEND", " Remote ")
	t.Setenv("REMOTE_URL", "https://example.supabase.co")
	t.Setenv("REMOTE_API_KEY", "anon")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendRemote {
		t.Fatalf("expected normalized remote backend, got %q", cfg.Backend)
	}
	if cfg.RemoteTimeout != 10*time.Second || cfg.SessionTTL != 72*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTAccessTTL() != time.Hour {
		t.Fatalf("unexpected jwt ttl %v", cfg.JWTAccessTTL())
	}
}

func TestLoadConfig_PostgresRequiresDatabaseAndSecret(t *testing.T) {
	t.Setenv("BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "DATABASE_URL") || !strings.Contains(msg, "JWT_SECRET") {
		t.Fatalf("expected both missing vars reported, got %q", msg)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Config{Backend: "sqlite", RemoteTimeout: time.Second}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "unknown BACKEND") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}
