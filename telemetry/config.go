package telemetry

import (
	"fmt"
	"strings"
)

// TracingConfig configures the tracing pipeline: whether spans are recorded
// at all, which exporter backs them, and how they are sampled. The zero value
// is a valid disabled configuration.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider     string  `yaml:"provider" mapstructure:"provider"`
	Endpoint     string  `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string  `yaml:"service_name" mapstructure:"service_name"`
	SampleRate   float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	TLSCertFile  string  `yaml:"tls_cert_file" mapstructure:"tls_cert_file"` // Client TLS certificate file
	InsecureMode bool    `yaml:"insecure_mode" mapstructure:"insecure_mode"` // Disable TLS verification (unsafe)
}

// Validate checks an enabled tracing configuration: a known provider, a
// sample rate within [0.0, 1.0], and, unless the provider is noop, an
// endpoint and a service name. A disabled configuration is always valid.
func (c *TracingConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	provider := strings.ToLower(c.Provider)
	switch provider {
	case "otlp", "noop":
	default:
		return fmt.Errorf("invalid tracing provider: %s (must be one of: otlp, noop)", c.Provider)
	}

	if c.SampleRate < 0.0 || c.SampleRate > 1.0 {
		return fmt.Errorf("invalid sample rate: %f (must be between 0.0 and 1.0)", c.SampleRate)
	}

	// The noop provider exports nothing, so it needs no destination.
	if provider == "noop" {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when tracing is enabled")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required when tracing is enabled")
	}

	return nil
}

// LoggingConfig configures structured logging: verbosity, encoding, and
// where entries go.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// Validate checks the logging configuration: a known level, a known format,
// and an output of "stdout", "stderr", or an absolute file path.
func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	switch strings.ToLower(c.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s (must be one of: json, text)", c.Format)
	}

	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	switch strings.ToLower(c.Output) {
	case "stdout", "stderr":
	default:
		if !strings.HasPrefix(c.Output, "/") {
			return fmt.Errorf("invalid log output: %s (must be 'stdout', 'stderr', or an absolute file path)", c.Output)
		}
	}

	return nil
}
