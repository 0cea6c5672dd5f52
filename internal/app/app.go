package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/catalog"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/config"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/event"
	handler "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/handler/http"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/session"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage/memory"
	pgstorage "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage/postgres"
	redisstorage "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage/redis"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/database"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/health"
	pkgkafka "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/kafka"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/middleware"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	instanceID     string
	storage        storage.Storage
	closeStorage   func()
	producer       *pkgkafka.Producer
	consumer       *pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	instanceID := cfg.InstanceID
	if instanceID == "" {
		instanceID = uuid.NewString()
	}
	logger = logger.With(slog.String("instance_id", instanceID))

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    handler.ServiceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		InstanceID:     instanceID,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		instanceID:     instanceID,
		tracerShutdown: tracerShutdown,
	}

	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowOpLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	st, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, err
	}
	a.storage = st
	a.closeStorage = closeStorage

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("storage", st.Ping)

	// Change fan-out: local subscribers always, other instances via Kafka.
	bus := broadcast.NewBus(logger)
	var publisher broadcast.Publisher = bus
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = broadcast.Fanout{bus, event.NewRelay(a.producer, logger)}

		listener := event.NewListener(instanceID, bus, logger)
		a.consumer = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers: cfg.KafkaBrokers,
			GroupID: cfg.ConsumerGroup(instanceID),
			Topic:   event.TopicShopperChanged,
		}, listener.Handler(), logger)

		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka change relay enabled",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", event.TopicShopperChanged),
			slog.String("group", cfg.ConsumerGroup(instanceID)),
		)
	}

	var lookup catalog.Lookup
	if cfg.CatalogURL != "" {
		lookup = catalog.NewClient(cfg.CatalogURL, logger)
		logger.Info("using remote catalog", slog.String("url", cfg.CatalogURL))
	} else {
		lookup = catalog.NewSeededMemory()
		logger.Info("using in-memory catalog")
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterConfig{
		Sessions:       session.NewFactory(st, publisher, instanceID, logger),
		Catalog:        lookup,
		Bus:            bus,
		Health:         healthHandler,
		Logger:         logger,
		CORS:           corsCfg,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		SecureCookie:   cfg.SecureCookies,
		RequestTimeout: cfg.RequestTimeout(),
		Heartbeat:      cfg.SSEHeartbeat(),
	})

	// No WriteTimeout: event streams stay open. Other routes are bounded by
	// the router's per-request timeout.
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// openStorage connects the configured backend and returns it with a close func.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return redisstorage.NewStorage(rdb, cfg.StorageTTL()), func() {
			if err := rdb.Close(); err != nil {
				logger.Error("redis close error", slog.String("error", err.Error()))
			}
		}, nil

	case config.BackendPostgres:
		pgCfg := database.DefaultPostgresConfig()
		pgCfg.Host = cfg.PostgresHost
		pgCfg.Port = cfg.PostgresPort
		pgCfg.User = cfg.PostgresUser
		pgCfg.Password = cfg.PostgresPass
		pgCfg.DBName = cfg.PostgresDB
		pgCfg.SSLMode = cfg.PostgresSSL
		pgCfg.MaxConns = cfg.DBMaxConns
		pgCfg.MinConns = cfg.DBMinConns

		pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)

		if err := database.RunMigrations(ctx, pool, pgstorage.Migrations(), logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")
		return pgstorage.NewStorage(pool), pool.Close, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage; state is lost on restart and not shared between instances")
		return memory.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Run starts the HTTP server and, when enabled, the Kafka listener. It blocks
// until ctx is canceled or a component fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.consumer != nil {
		g.Go(func() error {
			if err := a.consumer.Start(gctx); err != nil {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			a.logger.Info("shutdown signal received")
		}
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// Kafka producer, storage.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout())
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.closeStorage != nil {
		a.closeStorage()
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
