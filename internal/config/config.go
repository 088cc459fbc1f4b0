package config

import (
	"log"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger لاگر zap را بر اساس محیط اجرا می‌سازد
func InitLogger(appEnv string) *zap.Logger {
	var err error
	// production در محیط عملیاتی، development در بقیه موارد
	if appEnv == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	Logger.Info("✅ Zap logger initialized", zap.String("env", appEnv))
	return Logger
}
