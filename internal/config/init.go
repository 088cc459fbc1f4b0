package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config تنظیمات برنامه که از متغیرهای محیطی خوانده می‌شود
type Config struct {
	AppEnv  string `env:"APP_ENV" env-default:"development"`
	AppPort string `env:"APP_PORT" env-default:"8080"`

	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	JWTTTL     time.Duration `env:"JWT_TTL" env-default:"24h"`
	AdminEmail string        `env:"ADMIN_EMAIL" env-default:"admin@bloghub.com"`

	SeedMockData  bool `env:"SEED_MOCK_DATA" env-default:"true"`
	TrendingLimit int  `env:"TRENDING_LIMIT" env-default:"3"`

	// خالی بودن REDIS_ADDR یعنی Redis غیرفعال است
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	ActivityBuffer     int `env:"ACTIVITY_BUFFER" env-default:"256"`
	BatchSize          int `env:"BATCH_SIZE" env-default:"100"`
	ActivityFeedLength int `env:"ACTIVITY_FEED_LENGTH" env-default:"50"`
}

// Load بارگذاری .env (در صورت وجود) و سپس خواندن متغیرهای محیطی
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config error: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if cfg.TrendingLimit <= 0 {
		return nil, fmt.Errorf("config error: TRENDING_LIMIT must be positive, got %d", cfg.TrendingLimit)
	}
	return &cfg, nil
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
