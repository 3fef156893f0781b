package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusgo/assistant/domain"
)

const redisKeyPrefix = "assistant:cache:"

// RedisBackend stores cache entries in Redis. TTL is enforced by Redis key
// expiry in addition to the expires_at field, so expired entries vanish
// instead of lingering like SQLite rows.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, addr, password string, db int) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisBackend{client: client}, nil
}

// GetResponseCache retrieves a cache entry, or nil when absent.
func (b *RedisBackend) GetResponseCache(ctx context.Context, key string) (*domain.CacheEntry, error) {
	data, err := b.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &entry, nil
}

// UpsertResponseCache writes a cache entry with expiry matching expires_at.
func (b *RedisBackend) UpsertResponseCache(ctx context.Context, entry *domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return b.client.Set(ctx, redisKeyPrefix+entry.QueryKey, data, ttl).Err()
}

// IncrementCacheHit bumps the hit count of an existing entry, preserving its
// remaining TTL.
func (b *RedisBackend) IncrementCacheHit(ctx context.Context, key string) error {
	entry, err := b.GetResponseCache(ctx, key)
	if err != nil || entry == nil {
		return err
	}
	entry.HitCount++
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return b.client.Set(ctx, redisKeyPrefix+key, data, redis.KeepTTL).Err()
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
