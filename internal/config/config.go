package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Precedence: config file values, then environment variables
// (RESUMESCORE_AI_APIKEY, etc.), then defaults.
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Analyzer      AnalyzerConfig      `mapstructure:"analyzer"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds configuration for the AI suggestion provider
type AIConfig struct {
	Enabled        bool                 `mapstructure:"enabled"`
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	APIKey         string               `mapstructure:"apiKey"`
	MaxRetries     int                  `mapstructure:"maxRetries"`
	Temperature    float32              `mapstructure:"temperature"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for open to half-open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	APIKeys         []string      `mapstructure:"apiKeys"`
	MaxRequestSize  int64         `mapstructure:"maxRequestSize"`
	RateLimit       RateLimit     `mapstructure:"rateLimit"`
}

// RateLimit holds rate limiting configuration
type RateLimit struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requestsPerMinute"`
	Burst             int  `mapstructure:"burst"`
}

// AppConfig holds application-level configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// AnalyzerConfig tunes the scoring pipeline
type AnalyzerConfig struct {
	MinKeywordLength    int           `mapstructure:"minKeywordLength"`
	IndustryLexiconFile string        `mapstructure:"industryLexiconFile"`
	WatchLexicon        bool          `mapstructure:"watchLexicon"`
	SuggestionTimeout   time.Duration `mapstructure:"suggestionTimeout"`
}

// StorageConfig holds Postgres persistence configuration
type StorageConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

// CacheConfig holds Redis result-cache configuration
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	ServiceName string            `mapstructure:"serviceName"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Prometheus  PrometheusConfig  `mapstructure:"prometheus"`
	Console     ConsoleOtelConfig `mapstructure:"console"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// PrometheusConfig holds Prometheus exporter configuration
type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// ConsoleOtelConfig controls stdout trace/metric output for development
type ConsoleOtelConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumescore/")
	v.AddConfigPath("$HOME/.resumescore")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RESUMESCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file found, rely on defaults and environment
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", "60s")
	v.SetDefault("ai.circuitBreaker.timeout", "30s")
	v.SetDefault("ai.circuitBreaker.minRequests", 5)
	v.SetDefault("ai.circuitBreaker.failureThreshold", 0.6)

	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.shutdownTimeout", "30s")
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.maxRequestSize", 1048576) // 1MB
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.requestsPerMinute", 60)
	v.SetDefault("server.rateLimit.burst", 10)

	// App defaults
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10485760) // 10MB

	// Analyzer defaults
	v.SetDefault("analyzer.minKeywordLength", 3)
	v.SetDefault("analyzer.industryLexiconFile", "")
	v.SetDefault("analyzer.watchLexicon", false)
	v.SetDefault("analyzer.suggestionTimeout", "10s")

	// Storage defaults
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.maxOpenConns", 10)
	v.SetDefault("storage.maxIdleConns", 5)
	v.SetDefault("storage.connMaxLifetime", "30m")

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "1h")

	// Observability defaults
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "resumescore")
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.interval", "30s")
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.host", "localhost")
	v.SetDefault("observability.prometheus.port", 9090)
	v.SetDefault("observability.prometheus.path", "/metrics")
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", false)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.AI.Enabled {
		if c.AI.APIKey == "" {
			return fmt.Errorf("AI API key is required when AI suggestions are enabled (set RESUMESCORE_AI_APIKEY)")
		}
		if c.AI.Provider != "gemini" {
			return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
		}
		if c.AI.Timeout <= 0 {
			return fmt.Errorf("AI timeout must be positive")
		}
		if c.AI.MaxRetries < 0 {
			return fmt.Errorf("AI maxRetries cannot be negative")
		}
		if cb := c.AI.CircuitBreaker; cb.Enabled {
			if cb.FailureThreshold < 0 || cb.FailureThreshold > 1 {
				return fmt.Errorf("circuit breaker failure threshold must be between 0.0 and 1.0")
			}
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Server.MaxRequestSize <= 0 {
		return fmt.Errorf("server maxRequestSize must be positive")
	}
	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("rate limit requestsPerMinute must be positive")
		}
		if c.Server.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit burst must be positive")
		}
	}

	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.App.LogLevel)
	}
	if !contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return fmt.Errorf("default format %q is not in supported formats", c.App.DefaultFormat)
	}

	if c.Analyzer.MinKeywordLength < 1 {
		return fmt.Errorf("analyzer minKeywordLength must be at least 1")
	}
	if c.Analyzer.SuggestionTimeout <= 0 {
		return fmt.Errorf("analyzer suggestionTimeout must be positive")
	}

	if c.Storage.Enabled && c.Storage.DSN == "" {
		return fmt.Errorf("storage DSN is required when storage is enabled")
	}
	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache addr is required when cache is enabled")
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache TTL must be positive")
		}
	}

	if c.Observability.Enabled {
		sr := c.Observability.Tracing.SampleRate
		if sr < 0 || sr > 1 {
			return fmt.Errorf("tracing sample rate must be between 0.0 and 1.0")
		}
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
