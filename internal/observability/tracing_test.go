package observability

import (
	"context"
	"sync"
	"testing"

	"github.com/advisor-site/lead-intake/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withTracingConfig(t *testing.T, enabled bool, endpoint string) {
	t.Helper()
	original := config.AppConfig
	config.AppConfig = &config.Config{
		Environment:        "test",
		TracingEnabled:     enabled,
		TracingEndpoint:    endpoint,
		TracingSampleRatio: 1,
	}
	t.Cleanup(func() {
		ShutdownTracer()
		config.AppConfig = original
	})
}

func TestInitTracer_Disabled(t *testing.T) {
	withTracingConfig(t, false, "")

	InitTracer()

	assert.Nil(t, tracerProvider)
}

func TestInitTracer_NilConfig(t *testing.T) {
	original := config.AppConfig
	config.AppConfig = nil
	defer func() { config.AppConfig = original }()

	InitTracer()

	assert.Nil(t, tracerProvider)
}

func TestInitTracer_Enabled(t *testing.T) {
	// The exporter connects lazily so an unreachable endpoint still initializes
	withTracingConfig(t, true, "localhost:4317")

	InitTracer()

	assert.NotNil(t, tracerProvider)
	assert.NotNil(t, otel.GetTracerProvider())
}

func TestShutdownTracer_NilProvider(t *testing.T) {
	tracerProvider = nil

	// Should not panic with nil provider
	ShutdownTracer()
}

func TestShutdownTracer_ResetsProvider(t *testing.T) {
	withTracingConfig(t, true, "localhost:4317")
	InitTracer()

	ShutdownTracer()

	assert.Nil(t, tracerProvider)
}

func TestNewTracerProvider_Sampling(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  int
	}{
		{"always", 1, 1},
		{"never", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			exporter := tracetest.NewInMemoryExporter()

			provider, err := newTracerProvider(ctx, exporter, "test", tt.ratio)
			require.NoError(t, err)
			defer provider.Shutdown(ctx)

			_, span := provider.Tracer("test").Start(ctx, "submit")
			span.End()
			require.NoError(t, provider.ForceFlush(ctx))

			assert.Len(t, exporter.GetSpans(), tt.want)
		})
	}
}

func TestNewTracerProvider_Resource(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	provider, err := newTracerProvider(ctx, exporter, "staging", 1)
	require.NoError(t, err)
	defer provider.Shutdown(ctx)

	_, span := provider.Tracer("test").Start(ctx, "submit")
	span.End()
	require.NoError(t, provider.ForceFlush(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := map[string]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, ServiceName, attrs["service.name"])
	assert.Equal(t, "staging", attrs["deployment.environment"])
}

// countingExporter keeps a count across Shutdown, unlike the in-memory exporter.
type countingExporter struct {
	mu       sync.Mutex
	exported int
}

func (e *countingExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exported += len(spans)
	return nil
}

func (e *countingExporter) Shutdown(context.Context) error { return nil }

func (e *countingExporter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exported
}

func TestShutdownTracer_FlushesPendingSpans(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	ctx := context.Background()
	exporter := &countingExporter{}
	provider, err := newTracerProvider(ctx, exporter, "test", 1)
	require.NoError(t, err)

	installTracerProvider(provider)
	_, span := otel.Tracer("test").Start(ctx, "submit")
	span.End()

	ShutdownTracer()

	assert.Nil(t, tracerProvider)
	assert.Equal(t, 1, exporter.count())
}
