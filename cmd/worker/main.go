package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"payment-hub/config"
	"payment-hub/internal/app"
	"payment-hub/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("PHB_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if cfg.Storage.Driver == config.StorageMemory {
		log.Fatal().Msg("worker needs shared storage; the api process runs the scheduler in memory mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise engine")
	}
	defer a.Close()

	log.Info().
		Dur("fail_expired_interval", cfg.Engine.FailExpiredInterval).
		Dur("reconcile_interval", cfg.Engine.ReconcileInterval).
		Dur("outbox_interval", cfg.Outbox.Interval).
		Msg("Starting payment hub worker")

	if err := a.Scheduler().Run(ctx); err != nil {
		log.Error().Err(err).Msg("scheduler stopped with error")
	}
	log.Info().Msg("Worker exited")
}
