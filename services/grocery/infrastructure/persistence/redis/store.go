// Package redis is a KeyValue backed by Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghuser/pricetrack/pkg/cache"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
)

// KeyPrefix namespaces every key the store writes.
const KeyPrefix = "pricetrack:"

// Store is a Redis-backed persistence.KeyValue.
// Key format: "pricetrack:{key}", with "pricetrack:{key}:updated_at" holding
// the RFC 3339 time of the last write.
type Store struct {
	client *cache.RedisClient
	now    func() time.Time
}

// NewStore returns a Store on the given client.
func NewStore(client *cache.RedisClient) *Store {
	return &Store{client: client, now: time.Now}
}

// Get returns the stored value. Returns persistence.ErrKeyNotFound when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Client().Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, persistence.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

// Set writes the value and its timestamp atomically in a MULTI/EXEC pipeline.
// Values never expire.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.client.Client().TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.key(key), value, 0)
		pipe.Set(ctx, s.key(key)+":updated_at", s.now().UTC().Format(time.RFC3339Nano), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	v, err := s.client.Client().Get(ctx, s.key(key)+":updated_at").Result()
	if errors.Is(err, goredis.Nil) {
		return time.Time{}, persistence.ErrKeyNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis get updated_at: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("redis parse updated_at: %w", err)
	}
	return t, nil
}

// Delete removes the value and its timestamp.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Client().Del(ctx, s.key(key), s.key(key)+":updated_at").Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Ping checks the Redis connection health.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Store) key(key string) string {
	return KeyPrefix + key
}
