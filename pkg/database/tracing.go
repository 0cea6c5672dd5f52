package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/database"

// Storage systems reported in spans and metrics.
const (
	SystemRedis      = "redis"
	SystemPostgreSQL = "postgresql"
	SystemMemory     = "memory"
)

var (
	storageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_storage_operations_total",
			Help: "Total number of durable storage operations",
		},
		[]string{"system", "operation", "result"},
	)

	storageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_storage_operation_duration_seconds",
			Help:    "Duration of durable storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"system", "operation"},
	)
)

// slowOpCfg holds the configurable slow operation logging settings.
var slowOpCfg struct {
	mu        sync.RWMutex
	threshold time.Duration
	logger    *slog.Logger
}

// SetSlowOpLogging configures slow operation detection. Operations exceeding
// the threshold are logged as warnings with system, operation, statement and
// duration. A zero threshold disables slow operation logging.
func SetSlowOpLogging(threshold time.Duration, logger *slog.Logger) {
	slowOpCfg.mu.Lock()
	defer slowOpCfg.mu.Unlock()
	slowOpCfg.threshold = threshold
	slowOpCfg.logger = logger
}

func getSlowOpConfig() (time.Duration, *slog.Logger) {
	slowOpCfg.mu.RLock()
	defer slowOpCfg.mu.RUnlock()
	return slowOpCfg.threshold, slowOpCfg.logger
}

// TraceOp starts a span for a storage operation and records its outcome in
// metrics. The returned function must be called when the operation completes
// (typically via defer):
//
//	ctx, end := database.TraceOp(ctx, database.SystemRedis, "Get", key)
//	defer func() { end(err) }()
func TraceOp(ctx context.Context, system, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, system+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		elapsed := time.Since(start)
		result := "ok"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		storageOperationsTotal.WithLabelValues(system, operation, result).Inc()
		storageOperationDuration.WithLabelValues(system, operation).Observe(elapsed.Seconds())

		if threshold, logger := getSlowOpConfig(); threshold > 0 && logger != nil && elapsed >= threshold {
			attrs := []any{
				slog.String("system", system),
				slog.String("operation", operation),
				slog.String("statement", statement),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			logger.WarnContext(ctx, "slow storage operation detected", attrs...)
		}
	}
}
