package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	WithContext(ctx, NewWithWriter("storefront", "info", &buf)).Info("line")

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestWithContext(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func(t *testing.T) context.Context
		want    map[string]string
		missing []string
	}{
		{
			name:    "empty context",
			ctx:     func(*testing.T) context.Context { return context.Background() },
			missing: []string{"correlation_id", "shopper_id", "trace_id", "span_id"},
		},
		{
			name: "correlation id",
			ctx: func(*testing.T) context.Context {
				return WithCorrelationID(context.Background(), "req-123")
			},
			want:    map[string]string{"correlation_id": "req-123"},
			missing: []string{"shopper_id", "trace_id"},
		},
		{
			name: "shopper id",
			ctx: func(*testing.T) context.Context {
				return WithShopperID(context.Background(), "shopper-789")
			},
			want:    map[string]string{"shopper_id": "shopper-789"},
			missing: []string{"correlation_id"},
		},
		{
			name: "span",
			ctx:  spanContext,
			want: map[string]string{
				"trace_id": "4bf92f3577b34da6a3ce929d0e0e4736",
				"span_id":  "00f067aa0ba902b7",
			},
		},
		{
			name: "all fields",
			ctx: func(t *testing.T) context.Context {
				ctx := WithCorrelationID(spanContext(t), "req-all")
				return WithShopperID(ctx, "shopper-all")
			},
			want: map[string]string{
				"correlation_id": "req-all",
				"shopper_id":     "shopper-all",
				"trace_id":       "4bf92f3577b34da6a3ce929d0e0e4736",
				"service":        "storefront",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := logLine(t, tt.ctx(t))
			for k, v := range tt.want {
				assert.Equal(t, v, out[k], k)
			}
			for _, k := range tt.missing {
				assert.NotContains(t, out, k)
			}
		})
	}
}

func TestShopperIDFromContext(t *testing.T) {
	assert.Empty(t, ShopperIDFromContext(context.Background()))
	assert.Equal(t, "s1", ShopperIDFromContext(WithShopperID(context.Background(), "s1")))
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := Discard()
	assert.Same(t, l, FromContext(NewContext(context.Background(), l)))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "warn", &buf)
	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}
