// @title Quiz Practice API
// @version 1.0
// @description Generates multiple-choice practice questions from a reference PDF and records answers.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-practice/cmd/api/docs"
	"quiz-practice/internal/app"
	"quiz-practice/internal/config"
	"quiz-practice/internal/logger"
	"quiz-practice/internal/metrics"
	"quiz-practice/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	metrics.Init()

	components, err := app.Build(context.Background(), cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer components.Close()

	scheduler := service.NewScheduler(components.Generation, cfg.Scheduler)
	fiberApp := app.NewServer(cfg, components, scheduler)

	if cfg.Scheduler.Enabled {
		if err := scheduler.Start(cfg.Scheduler.Category); err != nil {
			appLogger.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("db_driver", cfg.DB.Driver),
		)
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
