package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"salescleanup/internal/config"
	"salescleanup/pkg/contracts"
)

const (
	ServiceName = "salescleanup"
	MeterName   = "salescleanup"
)

// OTelProviders holds the OpenTelemetry providers for one run
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *promclient.Registry
	Logger         *slog.Logger

	metricsFile string
	traceOut    io.Closer
}

// InitializeOTel sets up tracing and metrics.
// Metrics are always collected into a private Prometheus registry; they are written
// out as a textfile on Shutdown when metricsFile is set.
func InitializeOTel(cfg config.TelemetryConfig, traceFile, metricsFile string, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}
	ctx := context.Background()

	res := createResource()
	providers := &OTelProviders{
		Logger:      logger,
		metricsFile: metricsFile,
	}

	if err := initializeTracing(ctx, cfg, traceFile, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(ctx, res, providers); err != nil {
		providers.closeTraceOutput()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.InfoContext(ctx, "OpenTelemetry initialization complete",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", metricsFile))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg config.TelemetryConfig, traceFile string, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.TraceExporter {
	case "stdout":
		var out io.Writer = os.Stderr
		if traceFile != "" {
			file, err := os.OpenFile(traceFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("failed to open trace file: %w", err)
			}
			providers.traceOut = file
			out = file
		}

		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(out),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			providers.closeTraceOutput()
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		providers.TracerProvider = tp
		providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
		otel.SetTracerProvider(tp)

		providers.Logger.InfoContext(ctx, "Tracing initialized",
			slog.String("exporter", cfg.TraceExporter),
			slog.Float64("sample_ratio", cfg.SampleRatio))
	case "none", "":
		providers.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	return nil
}

// initializeMetrics sets up OpenTelemetry metrics backed by a Prometheus registry
func initializeMetrics(ctx context.Context, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))

	providers.Logger.DebugContext(ctx, "Metrics initialized")
	return nil
}

// WriteMetrics writes the current metric values in Prometheus text format.
// The file is written atomically, as the node exporter textfile collector expects.
func (p *OTelProviders) WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := promclient.WriteToTextfile(path, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes pending spans, writes the metrics textfile and releases resources
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if err := p.WriteMetrics(p.metricsFile); err != nil {
		errs = append(errs, err)
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if err := p.closeTraceOutput(); err != nil {
		errs = append(errs, fmt.Errorf("trace file close: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

func (p *OTelProviders) closeTraceOutput() error {
	if p.traceOut == nil {
		return nil
	}
	err := p.traceOut.Close()
	p.traceOut = nil
	return err
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}
