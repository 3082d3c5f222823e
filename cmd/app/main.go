package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiptrack/cmd"
	httpadapter "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("shiptrack stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	if err := config.ValidateForServer(); err != nil {
		return err
	}

	logger, closer := cmd.NewLogger(config)
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if config.DBAutoMigrate {
		if err := postgres.Migrate(gormDB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.InfoContext(ctx, "Database schema migrated")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := cmd.NewCompositionRoot(config, gormDB, logger)

	routerConfig, err := app.CreateRouterConfig(registry)
	if err != nil {
		return err
	}
	e, err := httpadapter.NewRouter(ctx, routerConfig)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager(registry)
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "port", config.HTTPPort)
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.InfoContext(context.Background(), "Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
