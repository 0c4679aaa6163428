package token

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// AccessTokenKey is the conventional key for the backend bearer token.
const AccessTokenKey = "access_token"

// ErrStoreUnavailable wraps backend failures of the credential store.
var ErrStoreUnavailable = errors.New("token store unavailable")

// Store persists bearer tokens under a service namespace. Get reports
// presence explicitly; Clear of a missing key is a no-op.
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Clear(ctx context.Context, key string) error
}

// RedisStore is the production [Store]. Set pipelines DEL then SET so any
// prior value is atomically replaced per the delete-then-insert contract.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a token store namespaced under prefix (default
// "atk").
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "atk"
	}
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + ":" + k
}

// Set replaces any prior value for key with value.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, s.key(key))
	pipe.Set(ctx, s.key(key), value, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the stored token and whether one is present.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.redis.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return val, true, nil
}

// Clear removes the stored token for key.
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// MemoryStore is an in-process [Store] for tests and embedded use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Set implements [Store].
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.data[key] = value
	return nil
}

// Get implements [Store].
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

// Clear implements [Store].
func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
