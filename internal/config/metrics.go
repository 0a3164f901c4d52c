package config

import "time"

const (
	envOtelExportInterval = "OTEL_METRIC_EXPORT_INTERVAL"
	envServiceVersion     = "SERVICE_VERSION"

	defaultOtelExportInterval = 15 * Duration(time.Second)
)

// MetricsConfig controls the Prometheus scrape port and the optional OTLP push.
type MetricsConfig struct {
	Enabled     bool
	Port        string
	ServiceName string
	// ServiceVersion is attached to every exported series when set.
	ServiceVersion string
	// OtlpEndpoint enables OTLP/HTTP push when non-empty.
	OtlpEndpoint   string
	OtlpInsecure   bool
	ExportInterval Duration
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, true),
		Port:           envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:    envOrDefault(envOtelService, defaultServiceName),
		ServiceVersion: envOrDefault(envServiceVersion, ""),
		OtlpEndpoint:   envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, true),
		ExportInterval: durationEnvOrDefault(envOtelExportInterval, defaultOtelExportInterval),
	}
}
