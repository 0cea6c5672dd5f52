package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/config"
)

// Storage backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// InstanceID tags changes published by this process. Empty means a random
	// id is generated at startup.
	InstanceID string `env:"INSTANCE_ID"`

	// HTTP server
	HTTPPort            int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`
	RequestTimeoutSecs  int      `env:"STOREFRONT_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	SSEHeartbeatSecs    int      `env:"STOREFRONT_SSE_HEARTBEAT_SECONDS" envDefault:"25"`
	SecureCookies       bool     `env:"STOREFRONT_SECURE_COOKIES" envDefault:"false"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs   []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
	ShutdownTimeoutSecs int      `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`

	// Storage
	StorageBackend  string `env:"STORAGE_BACKEND" envDefault:"redis"`
	StorageTTLHours int    `env:"STORAGE_TTL_HOURS" envDefault:"0"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL
	PostgresHost         string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort         int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser         string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass         string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB           string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL          string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	DBMaxConns           int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	DBMinConns           int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	SlowQueryThresholdMs int    `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"200"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:""`

	// Catalog
	CatalogURL string `env:"CATALOG_URL" envDefault:""`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	var errs []error

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	switch c.StorageBackend {
	case BackendRedis, BackendPostgres, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be one of redis, postgres, memory; got %q", c.StorageBackend))
	}
	if c.StorageTTLHours < 0 {
		errs = append(errs, errors.New("STORAGE_TTL_HOURS must not be negative"))
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		errs = append(errs, errors.New("OTEL_SAMPLE_RATE must be between 0.0 and 1.0"))
	}
	if c.RequestTimeoutSecs <= 0 {
		errs = append(errs, errors.New("STOREFRONT_REQUEST_TIMEOUT_SECONDS must be positive"))
	}
	if c.SSEHeartbeatSecs <= 0 {
		errs = append(errs, errors.New("STOREFRONT_SSE_HEARTBEAT_SECONDS must be positive"))
	}

	return errors.Join(errs...)
}

// StorageTTL is the expiry applied to stored collections; zero means none.
func (c *Config) StorageTTL() time.Duration {
	return time.Duration(c.StorageTTLHours) * time.Hour
}

// RequestTimeout bounds non-streaming API requests.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// SSEHeartbeat is the idle interval between event stream keep-alives.
func (c *Config) SSEHeartbeat() time.Duration {
	return time.Duration(c.SSEHeartbeatSecs) * time.Second
}

// ShutdownTimeout bounds graceful shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

// ConsumerGroup returns the Kafka group for this instance. Every instance
// needs its own group so each one sees every change.
func (c *Config) ConsumerGroup(instanceID string) string {
	if c.KafkaGroupID != "" {
		return c.KafkaGroupID
	}
	return "storefront-" + instanceID
}
