package main

import (
	"context"
	"log/slog"
	"os"

	"shiptrack/cmd"
	"shiptrack/internal/adapters/out/postgres"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger, closer := cmd.NewLogger(config)
	defer closer.Close()

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(config, gormDB, logger)
	if _, err := app.Seed(context.Background()); err != nil {
		logger.Error("seed", "error", err)
		os.Exit(1)
	}
}
