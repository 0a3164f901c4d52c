package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName    = "game-catalog-service"
	defaultExportInterval = 15 * time.Second
	meterName             = "github.com/preston-bernstein/game-catalog-service"
)

// Attribute keys shared by every instrument.
const (
	attrMethod   = "method"
	attrRoute    = "route"
	attrStatus   = "status"
	attrResource = "resource"
	attrOutcome  = "outcome"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled        bool
	Port           string
	ServiceName    string
	ServiceVersion string
	// OtlpEndpoint adds a periodic OTLP/HTTP push next to the Prometheus scrape.
	OtlpEndpoint   string
	OtlpInsecure   bool
	ExportInterval time.Duration
}

func (c TelemetryConfig) withDefaults() TelemetryConfig {
	if c.ServiceName == "" {
		c.ServiceName = defaultServiceName
	}
	if c.ExportInterval <= 0 {
		c.ExportInterval = defaultExportInterval
	}
	return c
}

// Setup builds a meter provider that always serves a Prometheus scrape handler
// and also pushes over OTLP when an endpoint is configured. When telemetry is
// disabled the Recorder keeps its in-memory counters and the handler is nil.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	cfg = cfg.withDefaults()

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	readers := []sdkmetric.Reader{promReader}
	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("otlp exporter: %w", err)
		}
		readers = append(readers, otlpReader)
	}

	res, err := resource.New(ctx, resource.WithAttributes(serviceAttributes(cfg)...))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("metrics resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)

	inst, err := instrumentFactory(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, fmt.Errorf("metrics instruments: %w", err)
	}
	return newRecorder(inst), promHandler, provider.Shutdown, nil
}

func serviceAttributes(cfg TelemetryConfig) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	return attrs
}

func buildOTLPReader(ctx context.Context, cfg TelemetryConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OtlpEndpoint)}
	if cfg.OtlpInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.ExportInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), nil
}

type otelInstruments struct {
	ctx               context.Context
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	upstreamAttempts  metric.Int64Counter
	upstreamErrors    metric.Int64Counter
	upstreamLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	tokenCacheHits    metric.Int64Counter
	tokenRefreshes    metric.Int64Counter
	refreshCycles     metric.Int64Counter
	refreshErrors     metric.Int64Counter
	refreshLatencyMs  metric.Float64Histogram
}

type counterSpec struct {
	name, desc string
	dst        *metric.Int64Counter
}

type histogramSpec struct {
	name, desc string
	dst        *metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(meterName)
	inst := &otelInstruments{ctx: context.Background()}

	counters := []counterSpec{
		{"http_requests_total", "HTTP requests served", &inst.requests},
		{"upstream_attempts_total", "Calls made to the catalog upstream", &inst.upstreamAttempts},
		{"upstream_errors_total", "Failed calls to the catalog upstream", &inst.upstreamErrors},
		{"upstream_rate_limit_hits_total", "Upstream 429 responses", &inst.rateLimitHits},
		{"token_cache_hits_total", "Bearer tokens served from the credential store", &inst.tokenCacheHits},
		{"token_refreshes_total", "Bearer token requests to the token endpoint", &inst.tokenRefreshes},
		{"catalog_refresh_cycles_total", "Reference data refreshes", &inst.refreshCycles},
		{"catalog_refresh_errors_total", "Failed reference data refreshes", &inst.refreshErrors},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		*c.dst = counter
	}

	histograms := []histogramSpec{
		{"http_request_duration_ms", "HTTP request latency", &inst.requestLatencyMs},
		{"upstream_duration_ms", "Catalog upstream call latency", &inst.upstreamLatencyMs},
		{"upstream_retry_after_ms", "Retry-After advertised on upstream 429s", &inst.retryAfterMs},
		{"catalog_refresh_duration_ms", "Reference data refresh latency", &inst.refreshLatencyMs},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("ms"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", h.name, err)
		}
		*h.dst = hist
	}

	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrRoute, path),
		attribute.Int(attrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordUpstreamAttempt(res string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(attrResource, res)}
	o.recordCounter(o.upstreamAttempts, 1, attrs...)
	o.recordHistogram(o.upstreamLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.upstreamErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(res string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(attrResource, res)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordTokenCacheHit() {
	if o == nil {
		return
	}
	o.recordCounter(o.tokenCacheHits, 1)
}

func (o *otelInstruments) recordTokenRefresh(err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.tokenRefreshes, 1, attribute.String(attrOutcome, outcome(err)))
}

func (o *otelInstruments) recordCatalogRefresh(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.refreshCycles, 1)
	o.recordHistogram(o.refreshLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.refreshErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil || counter == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil || hist == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
