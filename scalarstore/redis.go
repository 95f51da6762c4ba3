// Package scalarstore provides the durable last-known-good price records
// consulted by the fallback policy. Records live outside the main cache and
// its expiration window and are meant to survive process restarts.
package scalarstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/interfaces"
)

// RedisStore implements interfaces.PersistentScalarStore on Redis
type RedisStore struct {
	client *redis.Client
	cfg    config.ScalarStoreConfig
}

// NewRedisStore creates a redis-backed scalar store and verifies the
// connection
func NewRedisStore(cfg config.ScalarStoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisStore{client: client, cfg: cfg}, nil
}

// Get returns the record for the key, or false if none is stored
func (s *RedisStore) Get(ctx context.Context, key string) (interfaces.ScalarRecord, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.cfg.KeyPrefix+key).Result()
	if err == redis.Nil {
		return interfaces.ScalarRecord{}, false, nil
	}
	if err != nil {
		return interfaces.ScalarRecord{}, false, fmt.Errorf("reading scalar record: %w", err)
	}

	var record interfaces.ScalarRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return interfaces.ScalarRecord{}, false, fmt.Errorf("decoding scalar record: %w", err)
	}
	return record, true, nil
}

// Set stores the record for the key, replacing any previous one. Records
// never expire: they are the restart-surviving floor under the cache.
func (s *RedisStore) Set(ctx context.Context, key string, record interfaces.ScalarRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding scalar record: %w", err)
	}
	return s.client.Set(ctx, s.cfg.KeyPrefix+key, string(data), 0).Err()
}

// Close releases the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
