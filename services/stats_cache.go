package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsKeyPrefix = "dashboard:stats:"

// StatsCache keeps computed dashboard statistics in Redis.
// A nil *StatsCache or a nil client turns every call into a no-op.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &StatsCache{client: client, ttl: ttl, logger: logger.Named("stats-cache")}
}

func (c *StatsCache) enabled() bool {
	return c != nil && c.client != nil
}

// Get loads a cached value into dest and reports whether it was found
func (c *StatsCache) Get(ctx context.Context, key string, dest any) bool {
	if !c.enabled() {
		return false
	}

	data, err := c.client.Get(ctx, statsKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis GET failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cached stats unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *StatsCache) Set(ctx context.Context, key string, value any) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to marshal stats for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, statsKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis SET failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached stats window after a mutation
func (c *StatsCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}

	iter := c.client.Scan(ctx, 0, statsKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("redis SCAN failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("redis DEL failed", zap.Error(err))
	}
}
