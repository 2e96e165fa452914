package config

import (
	"os"
	"regexp"

	"github.com/spf13/viper"

	"github.com/zero-day-ai/streamplan"
)

// ConfigLoader loads solver configuration from YAML files.
type ConfigLoader interface {
	// Load reads, interpolates, and validates the file at path. Keys absent
	// from the file keep their DefaultConfig values.
	Load(path string) (*Config, error)

	// LoadWithDefaults behaves like Load, except a missing file yields the
	// default configuration instead of an error.
	LoadWithDefaults(path string) (*Config, error)
}

type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a ConfigLoader that validates with the given
// validator.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, streamplan.WrapError(streamplan.CONFIG_LOAD_FAILED,
			"failed to read config file "+path, err)
	}

	// Unmarshal over the defaults so omitted keys keep their default
	// values; in particular an absent max_cost stays unbounded.
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, streamplan.WrapError(streamplan.CONFIG_PARSE_FAILED,
			"failed to parse config file "+path, err)
	}

	// Interpolate ${VAR} references from the raw settings map, then write
	// the resolved strings back onto the string-valued fields.
	raw := interpolateEnvVars(v.AllSettings())
	if settings, ok := raw.(map[string]interface{}); ok {
		applyInterpolation(cfg, settings)
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, streamplan.WrapError(streamplan.CONFIG_VALIDATION_FAILED,
			"invalid configuration in "+path, err)
	}

	return cfg, nil
}

func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := l.validator.Validate(cfg); err != nil {
			return nil, streamplan.WrapError(streamplan.CONFIG_VALIDATION_FAILED,
				"default configuration is invalid", err)
		}
		return cfg, nil
	}

	return l.Load(path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateEnvVars recursively resolves ${VAR_NAME} references in the
// settings map. Unset variables are left as-is so validation can report
// them in context.
func interpolateEnvVars(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			result[key] = interpolateEnvVars(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, value := range v {
			result[i] = interpolateEnvVars(value)
		}
		return result
	case string:
		return interpolateString(v)
	default:
		return v
	}
}

func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}

// applyInterpolation copies interpolated string settings back onto cfg.
// Only string-valued fields can carry ${VAR} references; numeric fields
// would already have failed to unmarshal.
func applyInterpolation(cfg *Config, settings map[string]interface{}) {
	if logging, ok := settings["logging"].(map[string]interface{}); ok {
		setString(logging, "level", &cfg.Logging.Level)
		setString(logging, "format", &cfg.Logging.Format)
		setString(logging, "output", &cfg.Logging.Output)
	}
	if tracing, ok := settings["tracing"].(map[string]interface{}); ok {
		setString(tracing, "provider", &cfg.Tracing.Provider)
		setString(tracing, "endpoint", &cfg.Tracing.Endpoint)
		setString(tracing, "service_name", &cfg.Tracing.ServiceName)
		setString(tracing, "tls_cert_file", &cfg.Tracing.TLSCertFile)
	}
}

func setString(section map[string]interface{}, key string, dst *string) {
	if value, ok := section[key].(string); ok {
		*dst = value
	}
}
