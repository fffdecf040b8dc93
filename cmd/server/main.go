package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/catalog"
	"coffeeshop/internal/commons"
	"coffeeshop/internal/config"
	"coffeeshop/internal/infrastructure/logger"
	"coffeeshop/internal/infrastructure/mysql"
	"coffeeshop/internal/order"
	"coffeeshop/internal/review"
	"coffeeshop/internal/server"
)

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Auth.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET must be configured")
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	catalogCtrl := catalog.NewModule(db, zapLogger)
	ordersCtrl := order.NewModule(db, zapLogger)
	reviewsCtrl := review.NewModule(db, zapLogger)

	authenticate := auth.Middleware([]byte(cfg.Auth.JWTSecret), zapLogger)
	router := server.NewRouter(catalogCtrl, ordersCtrl, reviewsCtrl, authenticate, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
