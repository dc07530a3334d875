package observability

import (
	"testing"

	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFallsBackToAppConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_METRICS_EXPORTER", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "")

	cfg := LoadConfig(config.Config{AppName: "", Environment: "production", AppVersion: "1.2.3"})

	assert.Equal(t, "shopdesk", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "prometheus", cfg.OtelMetricsExporter)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.True(t, cfg.MetricsEnabled())
	assert.False(t, cfg.Debug())
}

func TestLoadConfigPrefersPrefixedVariables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("SHOPDESK_LOG_LEVEL", "debug")
	t.Setenv("OTEL_METRICS_EXPORTER", "prometheus")
	t.Setenv("SHOPDESK_OTEL_METRICS_EXPORTER", "None")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP")

	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Debug())
	assert.False(t, cfg.MetricsEnabled())
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
}

func TestLoadConfigClampsSamplingRatio(t *testing.T) {
	t.Setenv("OTEL_SAMPLING_RATIO", "4")
	assert.Equal(t, 1.0, LoadConfig(config.Config{}).OtelSamplingRatio)

	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")
	assert.Equal(t, 0.25, LoadConfig(config.Config{}).OtelSamplingRatio)
}

func TestDebugInDevelopment(t *testing.T) {
	assert.True(t, Config{Environment: "local", LogLevel: "info"}.Debug())
	assert.True(t, Config{Environment: "production", LogLevel: "debug"}.Debug())
}
