package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Limits    LimitsConfig    `mapstructure:"limits"`
	Callbacks CallbacksConfig `mapstructure:"callbacks"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	RateLimit       int           `mapstructure:"rate_limit"`
	RateWindow      time.Duration `mapstructure:"rate_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers            []string      `mapstructure:"brokers"`
	NotificationsTopic string        `mapstructure:"notifications_topic"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
}

// JWTConfig validates bearer tokens issued by the identity service.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

// EngineConfig tunes the transaction engine and its scheduler.
type EngineConfig struct {
	PendingTTL          time.Duration `mapstructure:"pending_ttl"`
	ReconcileAfter      time.Duration `mapstructure:"reconcile_after"`
	ReconcileBatch      int           `mapstructure:"reconcile_batch"`
	ExpireBatch         int           `mapstructure:"expire_batch"`
	Workers             int           `mapstructure:"workers"`
	LockTimeout         time.Duration `mapstructure:"lock_timeout"`
	LockRetryAttempts   int           `mapstructure:"lock_retry_attempts"`
	LockRetryBackoff    time.Duration `mapstructure:"lock_retry_backoff"`
	ProviderTimeout     time.Duration `mapstructure:"provider_timeout"`
	FailExpiredInterval time.Duration `mapstructure:"fail_expired_interval"`
	ReconcileInterval   time.Duration `mapstructure:"reconcile_interval"`
	JobTimeout          time.Duration `mapstructure:"job_timeout"`
}

type LimitsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type CallbacksConfig struct {
	ReplayTTL    time.Duration `mapstructure:"replay_ttl"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type OutboxConfig struct {
	BatchSize int           `mapstructure:"batch_size"`
	Interval  time.Duration `mapstructure:"interval"`
}

type ProvidersConfig struct {
	EWallet  EWalletConfig  `mapstructure:"ewallet"`
	BankWire BankWireConfig `mapstructure:"bankwire"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
}

type EWalletConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BaseURL     string `mapstructure:"base_url"`
	MerchantKey string `mapstructure:"merchant_key"`
	Secret      string `mapstructure:"secret"`
	CallbackURL string `mapstructure:"callback_url"`
}

type BankWireConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BaseURL     string `mapstructure:"base_url"`
	AccountID   string `mapstructure:"account_id"`
	Secret      string `mapstructure:"secret"`
	CallbackURL string `mapstructure:"callback_url"`
}

type StripeConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	// BackendURL overrides the Stripe API endpoint (stripe-mock, tests).
	BackendURL string `mapstructure:"backend_url"`
}

// Load reads configuration from file and environment variables.
// An optional .env file (PHB_ENV_FILE) is loaded first; real environment
// variables always win over it. Prefix: PHB_. Nested keys use underscore:
// PHB_DATABASE_HOST, PHB_ENGINE_PENDING_TTL, etc.
func Load(path string) (*Config, error) {
	envFile := os.Getenv("PHB_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PHB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PHB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Storage.Driver != StoragePostgres && c.Storage.Driver != StorageMemory {
		return fmt.Errorf("storage.driver must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage.Driver)
	}
	if c.Engine.PendingTTL <= 0 {
		return errors.New("engine.pending_ttl must be positive")
	}
	if c.Engine.Workers < 1 {
		return errors.New("engine.workers must be at least 1")
	}
	if c.Engine.LockRetryAttempts < 1 {
		return errors.New("engine.lock_retry_attempts must be at least 1")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("server.rate_window", "1m")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_hub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.notifications_topic", "merchant-notifications")
	v.SetDefault("kafka.write_timeout", "10s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "1h")
	v.SetDefault("jwt.issuer", "payment-hub")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("storage.driver", StoragePostgres)
	v.SetDefault("engine.pending_ttl", "30m")
	v.SetDefault("engine.reconcile_after", "5m")
	v.SetDefault("engine.reconcile_batch", 100)
	v.SetDefault("engine.expire_batch", 100)
	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.lock_timeout", "3s")
	v.SetDefault("engine.lock_retry_attempts", 3)
	v.SetDefault("engine.lock_retry_backoff", "50ms")
	v.SetDefault("engine.provider_timeout", "15s")
	v.SetDefault("engine.fail_expired_interval", "30s")
	v.SetDefault("engine.reconcile_interval", "1m")
	v.SetDefault("engine.job_timeout", "2m")
	v.SetDefault("limits.cache_ttl", "5m")
	v.SetDefault("callbacks.replay_ttl", "72h")
	v.SetDefault("callbacks.max_body_bytes", 1<<20)
	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("outbox.interval", "5s")
	v.SetDefault("providers.ewallet.enabled", false)
	v.SetDefault("providers.bankwire.enabled", false)
	v.SetDefault("providers.stripe.enabled", false)
}
