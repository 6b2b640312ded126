package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "file", cfg.Exporter, "default exporter should be file")
	require.Equal(t, "", cfg.FilePath, "file path should be empty by default")
	require.Equal(t, 1.0, cfg.SampleRate, "default sample rate should be 1.0")
	require.Equal(t, "waypoint", cfg.ServiceName, "default service name")
}

func TestNewProvider_Disabled(t *testing.T) {
	cfg := Config{
		Enabled: false,
	}

	provider, err := NewProvider(cfg)
	require.NoError(t, err, "should not error when disabled")
	require.NotNil(t, provider, "should return provider even when disabled")
	require.False(t, provider.Enabled(), "provider should report as disabled")

	// Tracer should be no-op but not nil
	tracer := provider.Tracer()
	require.NotNil(t, tracer, "should return a tracer")

	// Creating spans should not panic
	ctx, span := tracer.Start(context.Background(), "test-span")
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()

	// Shutdown should work
	err = provider.Shutdown(context.Background())
	require.NoError(t, err)
}

func TestNewProvider_Enabled_WithFileExporter(t *testing.T) {
	tmpDir := t.TempDir()
	tracePath := filepath.Join(tmpDir, "traces.jsonl")

	cfg := Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    tracePath,
		SampleRate:  1.0,
		ServiceName: "test-service",
	}

	provider, err := NewProvider(cfg)
	require.NoError(t, err, "should create provider with file exporter")
	require.NotNil(t, provider)
	require.True(t, provider.Enabled(), "provider should report as enabled")

	// Create a span to verify tracer works
	tracer := provider.Tracer()
	require.NotNil(t, tracer)

	ctx, span := tracer.Start(context.Background(), "test-span")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	// Verify span context is valid
	sc := span.SpanContext()
	require.True(t, sc.IsValid(), "span context should be valid")
	require.True(t, sc.TraceID().IsValid(), "trace ID should be valid")
	require.True(t, sc.SpanID().IsValid(), "span ID should be valid")

	span.End()

	// Shutdown to flush spans
	err = provider.Shutdown(context.Background())
	require.NoError(t, err)

	// Verify trace file was created
	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should exist")
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	cfg := Config{
		Enabled:  true,
		Exporter: "file",
	}

	provider, err := NewProvider(cfg)
	require.Error(t, err)
	require.Nil(t, provider)
	require.Contains(t, err.Error(), "file_path required")
}

func TestNewProvider_NoneExporter(t *testing.T) {
	cfg := Config{
		Enabled:  true,
		Exporter: "none",
	}

	provider, err := NewProvider(cfg)
	require.NoError(t, err, "none exporter keeps tracing on without output")
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "test-span")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	cfg := Config{
		Enabled:  true,
		Exporter: "carrier-pigeon",
	}

	provider, err := NewProvider(cfg)
	require.Error(t, err)
	require.Nil(t, provider)
	require.Contains(t, err.Error(), "unsupported exporter")
}

func TestNewProvider_DefaultsServiceNameAndSampleRate(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Config{
		Enabled:  true,
		Exporter: "file",
		FilePath: filepath.Join(tmpDir, "traces.jsonl"),
		// ServiceName and SampleRate left zero
	}

	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	require.True(t, provider.Enabled())
	require.NoError(t, provider.Shutdown(context.Background()))
}
