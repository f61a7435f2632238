// Package app assembles the engine from configuration. Both binaries build
// the same object graph; they differ only in what they run.
package app

import (
	"context"
	"fmt"

	"payment-hub/config"
	"payment-hub/internal/adapter/messaging/kafka"
	"payment-hub/internal/adapter/provider"
	"payment-hub/internal/adapter/provider/bankwire"
	"payment-hub/internal/adapter/provider/ewallet"
	"payment-hub/internal/adapter/provider/stripe"
	"payment-hub/internal/adapter/storage/memory"
	pgStorage "payment-hub/internal/adapter/storage/postgres"
	redisStorage "payment-hub/internal/adapter/storage/redis"
	"payment-hub/internal/core/ports"
	"payment-hub/internal/service"
	"payment-hub/internal/worker"

	"github.com/rs/zerolog"
)

// App holds the wired services.
type App struct {
	Config *config.Config

	PaymentSvc     ports.PaymentService
	StateMachine   ports.TransactionStateMachine
	Dispatcher     ports.CallbackDispatcher
	Ledger         ports.LedgerService
	LimitAdmin     ports.LimitAdminService
	TokenSvc       ports.TokenService
	AuditSvc       ports.AuditService
	Outbox         *service.OutboxServiceImpl
	RateLimitStore *redisStorage.RateLimitStore
	HealthCheckers []ports.HealthChecker

	log     zerolog.Logger
	closers []func()
}

// repositories groups the persistence ports for one storage driver.
type repositories struct {
	transactor    ports.DBTransactor
	transactions  ports.TransactionRepository
	wallets       ports.CurrencyWalletRepository
	entries       ports.BalanceTransactionRepository
	limits        ports.LimitRepository
	alerts        ports.LimitAlertRepository
	notifications ports.NotificationRepository
	audit         ports.AuditRepository
	health        ports.HealthChecker
}

// New connects to every backing service and wires the engine.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, log: log}

	repos, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	log.Info().Msg("Redis connected")

	publisher := kafka.NewPublisher(cfg.Kafka, log)
	a.closers = append(a.closers, func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("kafka writer close failed")
		}
	})

	registry, err := a.buildRegistry()
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info().Strs("providers", registry.Names()).Msg("payment providers registered")

	retry := service.RetryPolicy{Attempts: cfg.Engine.LockRetryAttempts, Backoff: cfg.Engine.LockRetryBackoff}
	limitCache := redisStorage.NewLimitCache(rdb)

	ledger := service.NewLedgerService(repos.wallets, repos.entries, repos.transactor, retry, log)
	limits := service.NewLimitsEngine(repos.limits, repos.transactions, limitCache, cfg.Limits.CacheTTL, log)
	a.Outbox = service.NewOutboxService(repos.notifications, publisher, log)
	stateMachine := service.NewTransactionService(
		repos.transactions,
		repos.wallets,
		repos.alerts,
		ledger,
		limits,
		a.Outbox,
		repos.transactor,
		service.TransactionSettings{PendingTTL: cfg.Engine.PendingTTL, Retry: retry},
		log,
	)

	a.StateMachine = stateMachine
	a.Ledger = ledger
	a.LimitAdmin = service.NewLimitAdminService(repos.limits, repos.alerts, limitCache, log)
	a.PaymentSvc = service.NewPaymentService(
		repos.transactions,
		stateMachine,
		registry,
		redisStorage.NewIdempotencyCache(rdb),
		cfg.Engine.ProviderTimeout,
		log,
	)
	a.Dispatcher = service.NewDispatcherService(
		registry,
		stateMachine,
		repos.transactions,
		redisStorage.NewReplayGuard(rdb),
		service.DispatcherSettings{
			ReplayTTL:      cfg.Callbacks.ReplayTTL,
			ReconcileAfter: cfg.Engine.ReconcileAfter,
			ReconcileBatch: cfg.Engine.ReconcileBatch,
			ExpireBatch:    cfg.Engine.ExpireBatch,
			Workers:        cfg.Engine.Workers,
		},
		log,
	)
	a.TokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	a.AuditSvc = service.NewAuditService(repos.audit, log)
	a.RateLimitStore = redisStorage.NewRateLimitStore(rdb)
	a.HealthCheckers = []ports.HealthChecker{repos.health, redisStorage.NewHealthCheck(rdb)}

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (*repositories, error) {
	cfg := a.Config
	if cfg.Storage.Driver == config.StorageMemory {
		a.log.Warn().Msg("using in-memory storage, data is lost on restart")
		store := memory.NewStore(cfg.Engine.LockTimeout)
		return &repositories{
			transactor:    store,
			transactions:  store.Transactions(),
			wallets:       store.Wallets(),
			entries:       store.Entries(),
			limits:        store.Limits(),
			alerts:        store.Alerts(),
			notifications: store.Notifications(),
			audit:         store.Audit(),
			health:        store,
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, a.log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	a.log.Info().Msg("PostgreSQL connected")

	return &repositories{
		transactor:    pgStorage.NewTransactor(pool, cfg.Engine.LockTimeout),
		transactions:  pgStorage.NewTransactionRepo(pool),
		wallets:       pgStorage.NewWalletRepo(pool),
		entries:       pgStorage.NewBalanceRepo(pool),
		limits:        pgStorage.NewLimitRepo(pool),
		alerts:        pgStorage.NewAlertRepo(pool),
		notifications: pgStorage.NewNotificationRepo(pool),
		audit:         pgStorage.NewAuditRepo(pool),
		health:        pgStorage.NewHealthCheck(pool),
	}, nil
}

// buildRegistry registers the enabled provider controllers.
func (a *App) buildRegistry() (*provider.Registry, error) {
	cfg := a.Config.Providers
	timeout := a.Config.Engine.ProviderTimeout
	var controllers []ports.PaymentSystemController

	if cfg.EWallet.Enabled {
		controllers = append(controllers, ewallet.New(ewallet.Config{
			BaseURL:     cfg.EWallet.BaseURL,
			MerchantKey: cfg.EWallet.MerchantKey,
			Secret:      cfg.EWallet.Secret,
			CallbackURL: cfg.EWallet.CallbackURL,
		}, provider.NewHTTPClient(ewallet.Name, timeout, a.log), service.NewHMACSignatureService()))
	}
	if cfg.BankWire.Enabled {
		controllers = append(controllers, bankwire.New(bankwire.Config{
			BaseURL:     cfg.BankWire.BaseURL,
			AccountID:   cfg.BankWire.AccountID,
			Secret:      cfg.BankWire.Secret,
			CallbackURL: cfg.BankWire.CallbackURL,
		}, provider.NewHTTPClient(bankwire.Name, timeout, a.log)))
	}
	if cfg.Stripe.Enabled {
		controllers = append(controllers, stripe.New(stripe.Config{
			APIKey:        cfg.Stripe.APIKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			BackendURL:    cfg.Stripe.BackendURL,
		}, provider.NewHTTPClient(stripe.Name, timeout, a.log), a.log))
	}

	registry, err := provider.NewRegistry(controllers...)
	if err != nil {
		return nil, fmt.Errorf("provider registry: %w", err)
	}
	return registry, nil
}

// Scheduler builds the periodic engine jobs.
func (a *App) Scheduler() *worker.Scheduler {
	cfg := a.Config
	return worker.NewScheduler(a.Dispatcher, a.Outbox, worker.SchedulerSettings{
		FailExpiredInterval: cfg.Engine.FailExpiredInterval,
		ReconcileInterval:   cfg.Engine.ReconcileInterval,
		OutboxInterval:      cfg.Outbox.Interval,
		OutboxBatch:         cfg.Outbox.BatchSize,
		JobTimeout:          cfg.Engine.JobTimeout,
	}, a.log)
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
