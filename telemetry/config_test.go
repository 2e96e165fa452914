package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestTracingConfig_Validate tests TracingConfig validation logic.
func TestTracingConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    TracingConfig
		wantError bool
		errMsg    string
	}{
		{
			name: "valid otlp config",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "otlp",
				Endpoint:    "localhost:4317",
				ServiceName: "streamplan",
				SampleRate:  0.5,
			},
			wantError: false,
		},
		{
			name: "noop needs no endpoint or service name",
			config: TracingConfig{
				Enabled:  true,
				Provider: "noop",
			},
			wantError: false,
		},
		{
			name: "disabled config always valid",
			config: TracingConfig{
				Enabled:     false,
				Provider:    "invalid",
				Endpoint:    "",
				ServiceName: "",
				SampleRate:  2.0,
			},
			wantError: false,
		},
		{
			name: "invalid provider",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "jaeger",
				Endpoint:    "http://localhost:14268",
				ServiceName: "streamplan",
				SampleRate:  1.0,
			},
			wantError: true,
			errMsg:    "invalid tracing provider",
		},
		{
			name: "sample rate too low",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "otlp",
				Endpoint:    "localhost:4317",
				ServiceName: "streamplan",
				SampleRate:  -0.1,
			},
			wantError: true,
			errMsg:    "invalid sample rate",
		},
		{
			name: "sample rate too high",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "otlp",
				Endpoint:    "localhost:4317",
				ServiceName: "streamplan",
				SampleRate:  1.5,
			},
			wantError: true,
			errMsg:    "invalid sample rate",
		},
		{
			name: "missing endpoint",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "otlp",
				Endpoint:    "",
				ServiceName: "streamplan",
				SampleRate:  1.0,
			},
			wantError: true,
			errMsg:    "endpoint is required",
		},
		{
			name: "missing service name",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "otlp",
				Endpoint:    "localhost:4317",
				ServiceName: "",
				SampleRate:  1.0,
			},
			wantError: true,
			errMsg:    "service name is required",
		},
		{
			name: "case insensitive provider",
			config: TracingConfig{
				Enabled:     true,
				Provider:    "OTLP",
				Endpoint:    "localhost:4317",
				ServiceName: "streamplan",
				SampleRate:  1.0,
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestLoggingConfig_Validate tests LoggingConfig validation logic.
func TestLoggingConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    LoggingConfig
		wantError bool
		errMsg    string
	}{
		{
			name: "valid json to stdout",
			config: LoggingConfig{
				Level:  "info",
				Format: "json",
				Output: "stdout",
			},
			wantError: false,
		},
		{
			name: "valid text to stderr",
			config: LoggingConfig{
				Level:  "debug",
				Format: "text",
				Output: "stderr",
			},
			wantError: false,
		},
		{
			name: "valid file output",
			config: LoggingConfig{
				Level:  "warn",
				Format: "json",
				Output: "/var/log/streamplan.log",
			},
			wantError: false,
		},
		{
			name: "error level",
			config: LoggingConfig{
				Level:  "error",
				Format: "json",
				Output: "stdout",
			},
			wantError: false,
		},
		{
			name: "invalid log level",
			config: LoggingConfig{
				Level:  "trace",
				Format: "json",
				Output: "stdout",
			},
			wantError: true,
			errMsg:    "invalid log level",
		},
		{
			name: "fatal is not a level",
			config: LoggingConfig{
				Level:  "fatal",
				Format: "json",
				Output: "stdout",
			},
			wantError: true,
			errMsg:    "invalid log level",
		},
		{
			name: "invalid format",
			config: LoggingConfig{
				Level:  "info",
				Format: "xml",
				Output: "stdout",
			},
			wantError: true,
			errMsg:    "invalid log format",
		},
		{
			name: "empty output",
			config: LoggingConfig{
				Level:  "info",
				Format: "json",
				Output: "",
			},
			wantError: true,
			errMsg:    "output is required",
		},
		{
			name: "invalid output (relative path)",
			config: LoggingConfig{
				Level:  "info",
				Format: "json",
				Output: "logs/streamplan.log",
			},
			wantError: true,
			errMsg:    "invalid log output",
		},
		{
			name: "case insensitive level",
			config: LoggingConfig{
				Level:  "INFO",
				Format: "json",
				Output: "stdout",
			},
			wantError: false,
		},
		{
			name: "case insensitive format",
			config: LoggingConfig{
				Level:  "info",
				Format: "JSON",
				Output: "stdout",
			},
			wantError: false,
		},
		{
			name: "case insensitive output",
			config: LoggingConfig{
				Level:  "info",
				Format: "json",
				Output: "STDOUT",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestTracingConfig_YAMLSerialization tests YAML marshaling and unmarshaling.
func TestTracingConfig_YAMLSerialization(t *testing.T) {
	original := TracingConfig{
		Enabled:     true,
		Provider:    "otlp",
		Endpoint:    "localhost:4317",
		ServiceName: "streamplan-test",
		SampleRate:  0.75,
	}

	data, err := yaml.Marshal(&original)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	yamlStr := string(data)
	assert.Contains(t, yamlStr, "enabled: true")
	assert.Contains(t, yamlStr, "provider: otlp")
	assert.Contains(t, yamlStr, "endpoint: localhost:4317")
	assert.Contains(t, yamlStr, "service_name: streamplan-test")
	assert.Contains(t, yamlStr, "sample_rate: 0.75")

	var unmarshaled TracingConfig
	err = yaml.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, original, unmarshaled)
}

// TestLoggingConfig_YAMLSerialization tests YAML marshaling and unmarshaling.
func TestLoggingConfig_YAMLSerialization(t *testing.T) {
	original := LoggingConfig{
		Level:  "debug",
		Format: "json",
		Output: "/var/log/streamplan.log",
	}

	data, err := yaml.Marshal(&original)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	yamlStr := string(data)
	assert.Contains(t, yamlStr, "level: debug")
	assert.Contains(t, yamlStr, "format: json")
	assert.Contains(t, yamlStr, "output: /var/log/streamplan.log")

	var unmarshaled LoggingConfig
	err = yaml.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, original, unmarshaled)
}

// TestYAMLDeserialization_CompleteConfig tests unmarshaling a combined YAML
// telemetry block.
func TestYAMLDeserialization_CompleteConfig(t *testing.T) {
	yamlContent := `
tracing:
  enabled: true
  provider: otlp
  endpoint: localhost:4317
  service_name: streamplan
  sample_rate: 0.5
  insecure_mode: true

logging:
  level: info
  format: json
  output: stdout
`

	type telemetryConfig struct {
		Tracing TracingConfig `yaml:"tracing"`
		Logging LoggingConfig `yaml:"logging"`
	}

	var config telemetryConfig
	err := yaml.Unmarshal([]byte(yamlContent), &config)
	require.NoError(t, err)

	assert.True(t, config.Tracing.Enabled)
	assert.Equal(t, "otlp", config.Tracing.Provider)
	assert.Equal(t, "localhost:4317", config.Tracing.Endpoint)
	assert.Equal(t, "streamplan", config.Tracing.ServiceName)
	assert.Equal(t, 0.5, config.Tracing.SampleRate)
	assert.True(t, config.Tracing.InsecureMode)
	assert.NoError(t, config.Tracing.Validate())

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
	assert.Equal(t, "stdout", config.Logging.Output)
	assert.NoError(t, config.Logging.Validate())
}

// Benchmark validation performance
func BenchmarkTracingConfig_Validate(b *testing.B) {
	config := TracingConfig{
		Enabled:     true,
		Provider:    "otlp",
		Endpoint:    "localhost:4317",
		ServiceName: "streamplan",
		SampleRate:  1.0,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = config.Validate()
	}
}

func BenchmarkLoggingConfig_Validate(b *testing.B) {
	config := LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = config.Validate()
	}
}
