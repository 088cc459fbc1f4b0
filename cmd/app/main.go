package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bloghub/internal/adapters/httpapi"
	"bloghub/internal/adapters/memory"
	redisadapter "bloghub/internal/adapters/redis"
	"bloghub/internal/config"
	"bloghub/internal/core/post"
	postapp "bloghub/internal/core/post/service"
	userapp "bloghub/internal/core/user/service"
	activityPort "bloghub/internal/ports/activity"
	"bloghub/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// activitySink هم مقصد رویدادها و هم منبع خواندن فید
type activitySink interface {
	activityPort.Publisher
	activityPort.Feed
}

func main() {
	cfg, err := config.Load() // بارگذاری تنظیمات از .env و محیط
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	logger := config.InitLogger(cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postRepo := memory.NewPostRepositoryMemory() // آداپتر خروجی
	if cfg.SeedMockData {
		postRepo.Seed(post.SeedPosts()...)
		logger.Info("✅ Mock posts seeded", zap.Int("count", postRepo.Len()))
	}

	// اتصال به Redis در صورت تنظیم REDIS_ADDR
	var sink activitySink = memory.NewActivityFeedMemory(cfg.ActivityFeedLength)
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = config.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Redis unavailable", zap.Error(err))
		}
		sink = redisadapter.NewActivityRepositoryRedis(redisClient, int64(cfg.ActivityFeedLength), logger)
	}

	activityWorker := workers.NewActivityWorker(sink, cfg.ActivityBuffer, cfg.BatchSize, logger)
	userSvc := userapp.NewUserService([]byte(cfg.JWTSecret), cfg.JWTTTL, cfg.AdminEmail, logger) // یوزکیس/سرویس
	postSvc := postapp.NewPostService(postRepo, activityWorker, cfg.TrendingLimit, logger)       // یوزکیس/سرویس
	r := httpapi.SetupRoutes(userSvc, userSvc, postSvc, postSvc, sink, logger)                   // تزریق یوزکیس به آداپتر ورودی

	// اجرای worker در پس‌زمینه
	workerDone := make(chan struct{})
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go func() {
		defer close(workerDone)
		activityWorker.Run(workerCtx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start:", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown:", zap.Error(err))
	}

	// worker بعد از سرور متوقف می‌شود تا رویدادهای باقی‌مانده flush شوند
	cancelWorker()
	<-workerDone

	closeResources(logger, redisClient)
}

// closeResources بستن اتصال Redis
func closeResources(logger *zap.Logger, client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}
}
