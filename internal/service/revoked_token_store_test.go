package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisSetExister struct {
	lastSetKey string
	lastSetTTL time.Duration
	lastExists []string

	setErr    error
	existsErr error
	existsN   int64
}

func (m *mockRedisSetExister) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisSetExister) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastExists = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

func TestMemoryRevokedTokenStore_Basics(t *testing.T) {
	store := NewMemoryRevokedTokenStore()

	revoked, err := store.IsRevoked("missing")
	if err != nil || revoked {
		t.Fatalf("expected missing jti false,nil; got %v,%v", revoked, err)
	}

	if err := store.Revoke("jti-1", 50*time.Millisecond); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	revoked, err = store.IsRevoked(" jti-1 ")
	if err != nil || !revoked {
		t.Fatalf("expected jti revoked, got %v,%v", revoked, err)
	}

	time.Sleep(70 * time.Millisecond)
	revoked, err = store.IsRevoked("jti-1")
	if err != nil || revoked {
		t.Fatalf("expected entry to expire with the token, got %v,%v", revoked, err)
	}
}

func TestMemoryRevokedTokenStore_IgnoresEmptyAndExpired(t *testing.T) {
	store := NewMemoryRevokedTokenStore()
	if err := store.Revoke("", time.Minute); err != nil {
		t.Fatalf("empty jti should be no-op, got %v", err)
	}
	if err := store.Revoke("jti-2", 0); err != nil {
		t.Fatalf("non-positive ttl should be no-op, got %v", err)
	}
	if revoked, _ := store.IsRevoked("jti-2"); revoked {
		t.Fatalf("already expired token should not be stored")
	}
}

func TestRedisRevokedTokenStore_Basics(t *testing.T) {
	mock := &mockRedisSetExister{existsN: 1}
	store := &redisRevokedTokenStore{
		client: mock,
		prefix: "catalog:revoked:",
	}

	if err := store.Revoke(" j1 ", time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if mock.lastSetKey != "catalog:revoked:j1" || mock.lastSetTTL != time.Minute {
		t.Fatalf("unexpected set key/ttl: %q %v", mock.lastSetKey, mock.lastSetTTL)
	}

	revoked, err := store.IsRevoked(" j1 ")
	if err != nil || !revoked {
		t.Fatalf("expected revoked true,nil; got %v,%v", revoked, err)
	}
	if len(mock.lastExists) != 1 || mock.lastExists[0] != "catalog:revoked:j1" {
		t.Fatalf("unexpected exists key: %+v", mock.lastExists)
	}
}

func TestRedisRevokedTokenStore_ErrorPathsAndEmptyJTI(t *testing.T) {
	mock := &mockRedisSetExister{
		setErr:    errors.New("set failed"),
		existsErr: errors.New("exists failed"),
	}
	store := &redisRevokedTokenStore{
		client: mock,
		prefix: "catalog:revoked:",
	}

	if err := store.Revoke("", time.Minute); err != nil {
		t.Fatalf("empty jti revoke should be no-op, got %v", err)
	}
	revoked, err := store.IsRevoked("")
	if err != nil || revoked {
		t.Fatalf("empty jti should be false,nil; got %v,%v", revoked, err)
	}

	if err := store.Revoke("j2", time.Minute); err == nil {
		t.Fatalf("expected revoke error")
	}
	if _, err := store.IsRevoked("j2"); err == nil {
		t.Fatalf("expected exists error")
	}
}
