package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterNone       = "none"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	Exporter         string
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string

	// Registerer receives the prometheus collector; nil means the default registry.
	Registerer prometheus.Registerer
}

// Metrics exposes export pipeline instruments.
type Metrics struct {
	exports           metric.Int64Counter
	exportDuration    metric.Float64Histogram
	artifactBytes     metric.Int64Histogram
	registryEvictions metric.Int64Counter
	registryArtifacts metric.Int64UpDownCounter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	exporterName := strings.ToLower(strings.TrimSpace(cfg.Exporter))
	if !cfg.Enabled || exporterName == ExporterNone {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	var reader sdkmetric.Reader
	switch exporterName {
	case ExporterPrometheus, "":
		registerer := cfg.Registerer
		if registerer == nil {
			registerer = prometheus.DefaultRegisterer
		}
		exporter, err := otelprom.New(otelprom.WithRegisterer(registerer))
		if err != nil {
			return nil, err
		}
		reader = exporter
	case ExporterOTLP:
		exporter, err := newOTLPExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
		if err != nil {
			return nil, err
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	default:
		return nil, fmt.Errorf("unsupported metrics exporter %q", cfg.Exporter)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("exporter", exporterName),
			zap.String("endpoint", cfg.ExporterEndpoint),
		)
	}

	return provider, nil
}

// New configures the export instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "shopdesk"
	}
	meter := provider.Meter(name)

	exports, err := meter.Int64Counter("shopdesk_exports_total",
		metric.WithDescription("Export runs by format and outcome"))
	if err != nil {
		return nil, err
	}
	exportDuration, err := meter.Float64Histogram("shopdesk_export_duration_ms",
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	artifactBytes, err := meter.Int64Histogram("shopdesk_export_artifact_bytes",
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}
	registryEvictions, err := meter.Int64Counter("shopdesk_registry_evictions_total")
	if err != nil {
		return nil, err
	}
	registryArtifacts, err := meter.Int64UpDownCounter("shopdesk_registry_artifacts")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		exports:           exports,
		exportDuration:    exportDuration,
		artifactBytes:     artifactBytes,
		registryEvictions: registryEvictions,
		registryArtifacts: registryArtifacts,
	}, nil
}

// NewNoop returns instruments backed by a noop provider.
func NewNoop() *Metrics {
	m, _ := New(Config{}, noop.NewMeterProvider())
	return m
}

// RecordExport counts a finished export run.
func (m *Metrics) RecordExport(ctx context.Context, format, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("format", strings.TrimSpace(format)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.exports.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.exportDuration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordArtifactBytes(ctx context.Context, format string, size int64) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("format", strings.TrimSpace(format)))
	m.artifactBytes.Record(ctx, size, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordEviction(ctx context.Context) {
	if m == nil {
		return
	}
	m.registryEvictions.Add(ctx, 1)
}

// AddRegistryArtifacts tracks the live artifact count; delta may be negative.
func (m *Metrics) AddRegistryArtifacts(ctx context.Context, delta int64) {
	if m == nil || delta == 0 {
		return
	}
	m.registryArtifacts.Add(ctx, delta)
}

func newOTLPExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"format":      {},
	"outcome":     {},
	"reason":      {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
