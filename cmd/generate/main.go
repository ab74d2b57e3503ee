// Command generate runs the question-generation pipeline once and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quiz-practice/internal/app"
	"quiz-practice/internal/config"
	"quiz-practice/internal/logger"
	"quiz-practice/internal/validation"

	"go.uber.org/zap"
)

func main() {
	category := flag.String("category", "", "question category (defaults to the first configured category)")
	count := flag.Int("count", 0, "number of questions to request (defaults to generation.default_count)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *category == "" && len(cfg.Generation.Categories) > 0 {
		*category = cfg.Generation.Categories[0]
	}
	if *count == 0 {
		*count = cfg.Generation.DefaultCount
	}

	validator := validation.NewValidator(cfg.Generation.Categories, cfg.Generation.MaxCount)
	if errs := validator.ValidateGenerateRequest(*category, *count); len(errs) > 0 {
		logger.Get().Fatal("Invalid arguments", zap.Error(errs))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Get().Fatal("Failed to initialize application", zap.Error(err))
	}
	defer components.Close()

	logger.Get().Info("Starting question generation",
		zap.String("category", *category),
		zap.Int("count", *count),
	)
	result, err := components.Generation.Generate(ctx, *category, *count)
	if err != nil {
		logger.Get().Fatal("Generation failed", zap.Error(err))
	}

	logger.Get().Info("Generation finished",
		zap.String("outcome", string(result.Outcome)),
		zap.Int("considered", result.Considered),
		zap.Int("accepted", result.Accepted),
		zap.Int("saved", result.Saved),
		zap.Int("failed", result.Failed),
	)
	if result.Saved == 0 {
		os.Exit(1)
	}
}
