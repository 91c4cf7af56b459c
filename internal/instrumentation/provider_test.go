package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProviderConfig(metricsExporter, tracingExporter string) Config {
	return Config{
		ServiceName:     "mailscope-test",
		ServiceVersion:  "0.0.1",
		Enabled:         true,
		MetricsExporter: metricsExporter,
		TracingExporter: tracingExporter,
	}
}

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		ServiceName:    "mailscope-test",
		ServiceVersion: "0.0.1",
		Enabled:        false,
	})
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.False(t, provider.Enabled())

	// Disabled still hands out a usable no-op recorder and tracer so
	// callers never branch on telemetry being on
	assert.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.Tracer("bridge"))

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderPrometheus(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, testProviderConfig(ExporterPrometheus, ExporterNone))
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.PrometheusHandler(),
		"prometheus exporter must expose a handler for the metrics server")
	assert.NotNil(t, provider.Tracer("bridge"))
}

func TestNewProviderStdout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, testProviderConfig(ExporterStdout, ExporterStdout))
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.True(t, provider.Enabled())
	assert.Nil(t, provider.PrometheusHandler(),
		"no prometheus handler without the prometheus exporter")
}

func TestNewProviderRejectsUnknownExporters(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewProvider(ctx, testProviderConfig("invalid", ExporterNone))
	assert.Error(t, err, "unknown metrics exporter must fail startup")

	_, err = NewProvider(ctx, testProviderConfig(ExporterPrometheus, "invalid"))
	assert.Error(t, err, "unknown tracing exporter must fail startup")
}

func TestNewProviderOTLPTracingNeedsEndpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	config := testProviderConfig(ExporterPrometheus, ExporterOTLP)
	config.OTLPEndpoint = ""

	_, err := NewProvider(ctx, config)
	assert.Error(t, err)
}

func TestProviderShutdown(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, testProviderConfig(ExporterPrometheus, ExporterNone))
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(ctx))
}
