package observability

import (
	"time"

	"resumescore/internal/config"
)

// ObservabilityConfig is the flattened configuration the manager consumes
type ObservabilityConfig struct {
	ServiceName     string
	ServiceVersion  string
	Enabled         bool
	ConsoleOutput   bool
	PrettyPrint     bool
	SampleRate      float64
	MetricsInterval time.Duration
	Prometheus      PrometheusConfig
}

// GetObservabilityConfig maps application configuration onto the manager's config
func GetObservabilityConfig(cfg *config.Config, version string) ObservabilityConfig {
	if cfg == nil {
		return ObservabilityConfig{
			ServiceName:    "resumescore",
			ServiceVersion: version,
			Enabled:        false,
			SampleRate:     1.0,
		}
	}

	obs := cfg.Observability

	return ObservabilityConfig{
		ServiceName:     obs.ServiceName,
		ServiceVersion:  version,
		Enabled:         obs.Enabled,
		ConsoleOutput:   obs.Console.Enabled,
		PrettyPrint:     obs.Console.PrettyPrint,
		SampleRate:      obs.Tracing.SampleRate,
		MetricsInterval: obs.Metrics.Interval,
		Prometheus: PrometheusConfig{
			Enabled: obs.Prometheus.Enabled,
			Host:    obs.Prometheus.Host,
			Port:    obs.Prometheus.Port,
			Path:    obs.Prometheus.Path,
		},
	}
}
