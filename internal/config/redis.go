package config

import (
	"context"
	"time"

	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// Redis client, nil when REDIS_URI is unset
	Redis *redisclient.Client
)

// InitRedis connects to Redis when a URI is configured. A failed connection is
// logged and leaves Redis nil so the service falls back to in-memory limiting.
func InitRedis() {
	if AppConfig.RedisURI == "" {
		logging.Logger.Info("redis not configured, using in-memory rate limiting")
		return
	}

	opts, err := redis.ParseURL(AppConfig.RedisURI)
	if err != nil {
		// plain host:port
		opts = &redis.Options{Addr: AppConfig.RedisURI}
	}
	if AppConfig.RedisPassword != "" {
		opts.Password = AppConfig.RedisPassword
	}
	opts.DB = AppConfig.RedisDB
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	// Wrap with traced client
	client := redisclient.NewClient(redis.NewClient(opts))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("addr", opts.Addr),
			zap.Error(err))
		return
	}

	Redis = client
	logging.Logger.Info("connected to Redis", zap.String("addr", opts.Addr))
}
