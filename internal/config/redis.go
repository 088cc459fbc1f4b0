package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisPingTimeout = 3 * time.Second

// NewRedisClient اتصال به Redis را راه‌اندازی می‌کند
func NewRedisClient(ctx context.Context, cfg *Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,     // آدرس Redis
		Password: cfg.RedisPassword, // رمز عبور
		DB:       cfg.RedisDB,       // شماره دیتابیس
	})

	// بررسی اتصال به Redis
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	s, err := client.Ping(pingCtx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.String("ping", s))
	return client, nil
}
