package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Metrics holds all custom metrics for the analysis pipeline
type Metrics struct {
	// Analysis metrics
	AnalysisDuration metric.Float64Histogram
	AnalysisCount    metric.Int64Counter
	TotalScore       metric.Int64Histogram

	// AI suggestion metrics
	AIFallbackCount metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// Manager manages OpenTelemetry setup
type Manager struct {
	config           ObservabilityConfig
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewManager creates a new observability manager. When observability is
// disabled the manager is inert: middleware passes through and tracers
// are no-ops.
func NewManager(obsConfig ObservabilityConfig) (*Manager, error) {
	if !obsConfig.Enabled {
		return &Manager{config: obsConfig}, nil
	}

	m := &Manager{
		config:        obsConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := m.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return m, nil
}

func (m *Manager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.config.ServiceName),
			semconv.ServiceVersion(m.config.ServiceVersion),
		),
	)
}

// initTracing sets up OpenTelemetry tracing
func (m *Manager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	if m.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if m.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else {
		// Spans still propagate to logs and metrics without an exporter
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(m.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (m *Manager) initMetrics() error {
	readers, err := m.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	return m.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (m *Manager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if m.config.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(m.metricsInterval())))
	}

	if m.config.Prometheus.Enabled {
		prometheusReader, prometheusMux, err := ServePrometheus(m.config.Prometheus)
		if err != nil {
			return nil, fmt.Errorf("failed to start Prometheus exporter: %w", err)
		}
		readers = append(readers, prometheusReader)
		m.prometheusServer = prometheusMux
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

func (m *Manager) metricsInterval() time.Duration {
	if m.config.MetricsInterval > 0 {
		return m.config.MetricsInterval
	}
	return 30 * time.Second
}

// initCustomMetrics creates the analysis pipeline metrics
func (m *Manager) initCustomMetrics() error {
	meter := m.meterProvider.Meter(m.config.ServiceName)
	m.metrics = &Metrics{}

	var err error

	m.metrics.AnalysisDuration, err = meter.Float64Histogram(
		"resumescore_analysis_duration_seconds",
		metric.WithDescription("Time spent analyzing a resume"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	m.metrics.AnalysisCount, err = meter.Int64Counter(
		"resumescore_analyses_total",
		metric.WithDescription("Total number of resume analyses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis count metric: %w", err)
	}

	m.metrics.TotalScore, err = meter.Int64Histogram(
		"resumescore_total_score",
		metric.WithDescription("Distribution of overall resume scores"),
	)
	if err != nil {
		return fmt.Errorf("failed to create total score metric: %w", err)
	}

	m.metrics.AIFallbackCount, err = meter.Int64Counter(
		"resumescore_ai_fallbacks_total",
		metric.WithDescription("Analyses that used the deterministic suggestion fallback"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI fallback metric: %w", err)
	}

	m.metrics.RateLimitHits, err = meter.Int64Counter(
		"resumescore_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (m *Manager) GetMetrics() *Metrics {
	if m.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return m.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (m *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !m.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		m.config.ServiceName,
		otelhttp.WithTracerProvider(m.tracerProvider),
		otelhttp.WithMeterProvider(m.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if !m.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TrackAnalysis records metrics for one completed analysis
func (mx *Metrics) TrackAnalysis(ctx context.Context, industry string, totalScore int, duration time.Duration, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("industry", industry),
		attribute.Bool("success", success),
	)

	if mx.AnalysisCount != nil {
		mx.AnalysisCount.Add(ctx, 1, attrs)
	}
	if !success {
		return
	}
	if mx.AnalysisDuration != nil {
		mx.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
	}
	if mx.TotalScore != nil {
		mx.TotalScore.Record(ctx, int64(totalScore), attrs)
	}
}

// RecordAIFallback records one use of the deterministic suggestion fallback
func (mx *Metrics) RecordAIFallback(ctx context.Context) {
	if mx.AIFallbackCount != nil {
		mx.AIFallbackCount.Add(ctx, 1)
	}
}

// RecordRateLimitHit records one rejected request
func (mx *Metrics) RecordRateLimitHit(ctx context.Context, clientKey string) {
	if mx.RateLimitHits != nil {
		mx.RateLimitHits.Add(ctx, 1, metric.WithAttributes(
			attribute.String("client", clientKey),
		))
	}
}

// No-op exporter for when console output is disabled
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}
