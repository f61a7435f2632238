package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"payment-hub/config"
	httpHandler "payment-hub/internal/adapter/http/handler"
	"payment-hub/internal/app"
	"payment-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("PHB_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting payment hub API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise engine")
	}
	defer a.Close()

	// The in-memory store lives in this process, so the scheduler has to as well.
	schedulerDone := make(chan struct{})
	if cfg.Storage.Driver == config.StorageMemory {
		go func() {
			defer close(schedulerDone)
			_ = a.Scheduler().Run(ctx)
		}()
	} else {
		close(schedulerDone)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     a.PaymentSvc,
		StateMachine:   a.StateMachine,
		Dispatcher:     a.Dispatcher,
		Ledger:         a.Ledger,
		LimitAdmin:     a.LimitAdmin,
		TokenSvc:       a.TokenSvc,
		RateLimitStore: a.RateLimitStore,
		RateLimit:      int64(cfg.Server.RateLimit),
		RateWindow:     cfg.Server.RateWindow,
		CallbackBytes:  cfg.Callbacks.MaxBodyBytes,
		HealthCheckers: a.HealthCheckers,
		AuditSvc:       a.AuditSvc,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	<-schedulerDone

	log.Info().Msg("Server exited")
}
