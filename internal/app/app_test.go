package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"catalog-admin/internal/config"
)

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger("debug"); err != nil {
		t.Fatalf("expected debug level to be valid: %v", err)
	}
	if _, err := NewLogger("chatty"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestNewRedisClient_DisabledWithoutAddr(t *testing.T) {
	if c := NewRedisClient(context.Background(), &config.Config{}, zap.NewNop()); c != nil {
		t.Fatalf("expected nil client without REDIS_ADDR")
	}
}

func TestNewSessionManager_DefaultsToMemory(t *testing.T) {
	m := NewSessionManager(&config.Config{SessionTTL: time.Minute}, nil)
	if m.TTL() != time.Minute {
		t.Fatalf("expected configured ttl, got %v", m.TTL())
	}
	s := m.New()
	if err := m.SetToken(context.Background(), s, "tok", "admin@example.com"); err != nil {
		t.Fatalf("memory store should accept writes: %v", err)
	}
}

func TestBuild_RemoteBackendForwardsUserToken(t *testing.T) {
	var gotAuth, gotAPIKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 3, "category_name": "Music"}})
	}))
	defer srv.Close()

	cfg := &config.Config{
		Backend:       config.BackendRemote,
		RemoteURL:     srv.URL,
		RemoteAPIKey:  "anon",
		RemoteTimeout: time.Second,
	}
	backend, err := Build(context.Background(), cfg, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer backend.Close()
	if backend.Local != nil {
		t.Fatalf("remote backend must not expose a local authenticator")
	}

	created, err := backend.Catalog.SaveCategory(context.Background(), "user-token", 0, "Music")
	if err != nil {
		t.Fatalf("save category: %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("expected created row decoded, got %+v", created)
	}
	if gotAuth != "Bearer user-token" || gotAPIKey != "anon" {
		t.Fatalf("expected user token forwarded, got auth=%q apikey=%q", gotAuth, gotAPIKey)
	}
	if !strings.HasSuffix(gotPath, "/rest/v1/product_categories") {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestBuild_UnknownBackend(t *testing.T) {
	if _, err := Build(context.Background(), &config.Config{Backend: "sqlite"}, zap.NewNop(), nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
