// Package cache stores finished analyses per place. Every failure degrades
// to a miss; callers never see a cache error.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sonnimal/internal/common/logger"
	"sonnimal/internal/common/metrics"
	"sonnimal/internal/models"
)

const (
	DefaultPrefix = "sonnimal:analysis:"
	DefaultTTL    = 24 * time.Hour
)

type Store interface {
	Get(ctx context.Context, placeID string) (*models.AnalysisResult, bool)
	Set(ctx context.Context, placeID string, result *models.AnalysisResult)
	Available() bool
}

type Options struct {
	Prefix string
	TTL    time.Duration
}

// New checks connectivity once and returns a Redis-backed store, or a no-op
// store when client is nil or the ping fails.
func New(ctx context.Context, client redis.Cmdable, opts Options, log logger.Logger) Store {
	if client == nil {
		log.Info("analysis cache disabled", nil)
		return Noop{}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("analysis cache unavailable, continuing without it", map[string]interface{}{
			"error": err.Error(),
		})
		return Noop{}
	}
	return NewRedisStore(client, opts, log)
}

type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisStore(client redis.Cmdable, opts Options, log logger.Logger) *RedisStore {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &RedisStore{
		client: client,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		logger: log.With(map[string]interface{}{"component": "cache"}),
	}
}

func (s *RedisStore) Key(placeID string) string {
	return s.prefix + placeID
}

func (s *RedisStore) Available() bool { return true }

func (s *RedisStore) Get(ctx context.Context, placeID string) (*models.AnalysisResult, bool) {
	val, err := s.client.Get(ctx, s.Key(placeID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache get failed", map[string]interface{}{
				"placeId": placeID,
				"error":   err.Error(),
			})
		}
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		s.logger.Warn("cache entry unreadable", map[string]interface{}{
			"placeId": placeID,
			"error":   err.Error(),
		})
		metrics.RecordCacheLookup(false)
		return nil, false
	}

	metrics.RecordCacheLookup(true)
	return &result, true
}

func (s *RedisStore) Set(ctx context.Context, placeID string, result *models.AnalysisResult) {
	if result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("cache encode failed", map[string]interface{}{"placeId": placeID, "error": err.Error()})
		return
	}
	if err := s.client.Set(ctx, s.Key(placeID), data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache set failed", map[string]interface{}{
			"placeId": placeID,
			"error":   err.Error(),
		})
	}
}

// Noop never holds anything.
type Noop struct{}

func (Noop) Get(ctx context.Context, placeID string) (*models.AnalysisResult, bool) {
	metrics.RecordCacheLookup(false)
	return nil, false
}

func (Noop) Set(ctx context.Context, placeID string, result *models.AnalysisResult) {}

func (Noop) Available() bool { return false }
