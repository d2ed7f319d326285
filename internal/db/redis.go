package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/config"
)

// OpenRedis returns nil when redis is not configured or unreachable. Callers
// treat a nil client as "caching and rate limiting off".
func OpenRedis(conf *config.RedisConfig) *redis.Client {
	if conf == nil || conf.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unavailable, continuing without it", zap.String("addr", conf.Addr), zap.Error(err))
		_ = client.Close()
		return nil
	}

	return client
}
