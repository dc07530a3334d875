package observability

import (
	"strings"

	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/smallbiznis/shopdesk/internal/observability/metrics"
)

// Config is the logging, tracing and metrics setup for one shopdesk process.
// Service identity comes from the app config; the rest is read from
// LOG_* and OTEL_* variables, each overridable with the SHOPDESK_ prefix.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelMetricsExporter  string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	out := Config{
		ServiceName: strings.TrimSpace(cfg.AppName),
		Environment: strings.TrimSpace(cfg.Environment),
		Version:     strings.TrimSpace(cfg.AppVersion),

		LogLevel:  config.EnvLower("LOG_LEVEL", "info"),
		LogFormat: config.EnvLower("LOG_FORMAT", "json"),

		OtelEnabled:          config.EnvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: config.Env("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint),
		OtelMetricsExporter:  config.EnvLower("OTEL_METRICS_EXPORTER", metrics.ExporterPrometheus),
		// Export traffic is a handful of requests per operator session, so
		// every trace is kept unless told otherwise.
		OtelSamplingRatio: config.EnvFloat("OTEL_SAMPLING_RATIO", 1),
	}
	if out.ServiceName == "" {
		out.ServiceName = "shopdesk"
	}
	out.OtelExporterProtocol = config.EnvLower("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL",
		config.EnvLower("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"))
	if out.OtelSamplingRatio < 0 || out.OtelSamplingRatio > 1 {
		out.OtelSamplingRatio = 1
	}
	return out
}

// MetricsEnabled is false only when the metrics exporter is "none"; the
// /metrics endpoint is served otherwise.
func (c Config) MetricsEnabled() bool {
	return c.OtelMetricsExporter != metrics.ExporterNone
}

func (c Config) Debug() bool {
	return c.LogLevel == "debug" || isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
