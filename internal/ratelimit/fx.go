package ratelimit

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/compass/internal/config"
)

var Module = fx.Module("ratelimit",
	fx.Provide(NewRedisClient),
	fx.Provide(NewTokenBucket),
)

// NewRedisClient returns nil when no redis address is configured. Consumers
// treat a nil client as "rate limiting disabled".
func NewRedisClient(cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	log.Info("redis client initialized", zap.String("addr", cfg.RedisAddr))
	return client
}
