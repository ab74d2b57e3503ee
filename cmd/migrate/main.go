package main

import (
	"flag"
	"log"

	"quiz-practice/internal/config"
	"quiz-practice/internal/database"
	"quiz-practice/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", database.DirectionUp, "migration direction: up or down")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, *direction); err != nil {
		l.Fatal("Failed to run migrations", zap.String("direction", *direction), zap.Error(err))
	}
	l.Info("Migrations complete", zap.String("driver", cfg.DB.Driver), zap.String("direction", *direction))
}
