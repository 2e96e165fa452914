package streamplan

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RunID identifies one solving run. Every solve entry point mints a fresh
// RunID and threads it through logs and spans so a run's records can be
// correlated across outputs.
type RunID string

// NewRunID mints a UUID v4 run identifier.
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// ParseRunID validates a string as a UUID and returns it as a RunID.
func ParseRunID(s string) (RunID, error) {
	if s == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid run ID: %w", err)
	}

	return RunID(parsed.String()), nil
}

// Validate reports whether the RunID is a well-formed UUID.
func (id RunID) Validate() error {
	if id == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}

	return nil
}

// String returns the string representation of the RunID.
func (id RunID) String() string {
	return string(id)
}

// IsZero reports whether the RunID is unset.
func (id RunID) IsZero() bool {
	return id == ""
}

// MarshalJSON serializes the RunID as a JSON string, or null when unset.
func (id RunID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON deserializes and validates a JSON string into a RunID. An
// empty string sets the zero value.
func (id *RunID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal run ID: %w", err)
	}

	if s == "" {
		*id = ""
		return nil
	}

	parsed, err := ParseRunID(s)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
