package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankdesk/internal/cli"
	"bankdesk/internal/config"
	"bankdesk/internal/database"
	"bankdesk/internal/logging"
	"bankdesk/internal/repositories"
	"bankdesk/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const healthCheckTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bankdesk:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("error closing database", "error", cerr)
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), healthCheckTimeout)
	err = db.HealthCheck(pingCtx)
	cancelPing()
	if err != nil {
		logger.Error("database health check failed", "path", cfg.Database.Path, "error", err)
		return fmt.Errorf("database unavailable: %w", err)
	}

	pins, err := repositories.NewPINCodec(cfg.Security)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := services.NewPrometheusMetrics(registry)

	accounts := services.NewAccountService(
		repositories.NewAccountRepository(db.DB, pins),
		repositories.NewTransactionRepository(db.DB),
		metrics,
		logger,
	)

	app := cli.NewApp(accounts, cli.Options{
		In:      os.Stdin,
		Out:     os.Stdout,
		NoColor: cfg.App.NoColor,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bankdesk started", "environment", cfg.App.Environment, "pin_storage", cfg.Security.PINStorage)

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		logger.Info("shutdown signal received")
		err = nil
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			logger.Error("failed to write metrics textfile", "path", path, "error", werr)
		}
	}

	logger.Info("bankdesk stopped")
	return err
}
