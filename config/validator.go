package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ConfigValidator validates a loaded configuration.
type ConfigValidator interface {
	// Validate checks struct tags and section-specific rules. It returns an
	// error describing every violation found, or nil if the configuration
	// is valid.
	Validate(config *Config) error
}

type validatorImpl struct {
	validate *validator.Validate
}

// NewValidator returns a ConfigValidator backed by struct-tag validation
// plus the logging and tracing section validators.
func NewValidator() ConfigValidator {
	return &validatorImpl{
		validate: validator.New(),
	}
}

func (v *validatorImpl) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := v.validate.Struct(config); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return v.formatValidationError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Section validators own the enumerated-value rules.
	if err := config.Logging.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed:\n  - logging: %w", err)
	}
	if err := config.Tracing.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed:\n  - tracing: %w", err)
	}

	return nil
}

// formatValidationError converts validator errors into a readable message
// listing every violated field with its rule.
func (v *validatorImpl) formatValidationError(errs validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:")

	for _, err := range errs {
		field := formatFieldPath(err.Namespace())

		var msg string
		switch err.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			msg = fmt.Sprintf("must be at most %s", err.Param())
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())
		default:
			msg = fmt.Sprintf("failed validation rule %q", err.Tag())
		}

		sb.WriteString(fmt.Sprintf("\n  - %s: %s", field, msg))
	}

	return fmt.Errorf("%s", sb.String())
}

// formatFieldPath turns a validator namespace like "Config.Solver.MaxTime"
// into the YAML path "solver.max_time".
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the root struct name
	}
	for i, part := range parts {
		parts[i] = camelToSnake(part)
	}
	return strings.Join(parts, ".")
}

// camelToSnake converts CamelCase field names to snake_case YAML keys.
func camelToSnake(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
