package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persiste el registro de cada sesion de navegador por su ID.
type Store interface {
	Get(ctx context.Context, id string) (Data, bool, error)
	Put(ctx context.Context, id string, data Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
}

func NewMemoryStore() Store {
	return &memoryStore{
		items: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) Get(_ context.Context, id string) (Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[id]
	if !ok {
		return Data{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, id)
		return Data{}, false, nil
	}
	return entry.data.clone(), true, nil
}

func (s *memoryStore) Put(_ context.Context, id string, data Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(id) == "" {
		return nil
	}
	s.items[id] = memoryEntry{
		data:      data.clone(),
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// redisKVClient es el subconjunto de *redis.Client que usa el store.
type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisStore struct {
	client  redisKVClient
	prefix  string
	timeout time.Duration
}

func NewRedisStore(client *redis.Client) Store {
	if client == nil {
		return nil
	}
	return &redisStore{
		client:  client,
		prefix:  "catalog:session:",
		timeout: 500 * time.Millisecond,
	}
}

func (s *redisStore) Get(ctx context.Context, id string) (Data, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Data{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Data{}, false, nil
		}
		return Data{}, false, err
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, false, err
	}
	return data, true, nil
}

func (s *redisStore) Put(ctx context.Context, id string, data Data, ttl time.Duration) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+id, raw, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+id).Err()
}
