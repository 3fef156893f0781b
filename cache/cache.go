package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/metrics"
)

// DefaultTTL is how long cached responses remain servable.
const DefaultTTL = 24 * time.Hour

// Key normalizes a raw query into a cache key: lowercase, trimmed, with
// whitespace runs collapsed to single underscores. The key is readable on
// purpose so cache rows can be inspected directly.
func Key(query string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	return strings.Join(fields, "_")
}

// Backend is the persistence layer for cached responses.
type Backend interface {
	GetResponseCache(ctx context.Context, key string) (*domain.CacheEntry, error)
	UpsertResponseCache(ctx context.Context, entry *domain.CacheEntry) error
	IncrementCacheHit(ctx context.Context, key string) error
}

// Store caches resolved answers with lazy TTL expiry. An expired row is
// treated as a miss and left for the next Put to overwrite.
type Store struct {
	backend Backend
	log     zerolog.Logger
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
}

// New creates a cache store over the given backend.
func New(backend Backend, log zerolog.Logger, m *metrics.Metrics) *Store {
	return &Store{
		backend: backend,
		log:     log.With().Str("component", "cache").Logger(),
		ttl:     DefaultTTL,
		now:     time.Now,
		metrics: m,
	}
}

// SetNow overrides the clock, for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

// Get returns the cached answer and category for a query, or false on a
// miss. Backend errors are logged and degrade to a miss.
func (s *Store) Get(ctx context.Context, query string) (*domain.CachedAnswer, string, bool) {
	key := Key(query)
	entry, err := s.backend.GetResponseCache(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		s.metrics.RecordCacheMiss()
		return nil, "", false
	}
	if entry == nil || !entry.ExpiresAt.After(s.now()) {
		s.metrics.RecordCacheMiss()
		return nil, "", false
	}

	var answer domain.CachedAnswer
	if err := json.Unmarshal(entry.ResponseData, &answer); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache entry is malformed")
		s.metrics.RecordCacheMiss()
		return nil, "", false
	}

	if err := s.backend.IncrementCacheHit(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to increment hit count")
	}
	s.metrics.RecordCacheHit()
	return &answer, entry.Category, true
}

// Put stores an answer for a query, replacing any existing entry and
// resetting its hit count. Failures are logged and dropped so a broken cache
// never blocks resolution.
func (s *Store) Put(ctx context.Context, query string, answer *domain.CachedAnswer, category string) {
	key := Key(query)
	data, err := json.Marshal(answer)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}

	entry := &domain.CacheEntry{
		QueryKey:     key,
		ResponseData: data,
		Category:     category,
		ExpiresAt:    s.now().Add(s.ttl),
		HitCount:     1,
	}
	if err := s.backend.UpsertResponseCache(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}
}
