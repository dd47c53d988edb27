package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RDB stays nil when Redis is not configured or unreachable; callers must check
var RDB *redis.Client

func ConnectRedis(cfg RedisConfig, logger *zap.Logger) *redis.Client {
	if cfg.Addr == "" {
		logger.Warn("redis address not set, dashboard cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis, dashboard cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}

	RDB = client
	logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	return client
}
