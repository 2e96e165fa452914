package streamplan

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	require.NoError(t, id.Validate())
	assert.False(t, id.IsZero())

	// Sequential mints never collide.
	assert.NotEqual(t, id, NewRunID())
}

func TestParseRunID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
		errMsg    string
	}{
		{
			name:  "valid UUID",
			input: "550e8400-e29b-41d4-a716-446655440000",
		},
		{
			name:  "uppercase UUID is canonicalized",
			input: "550E8400-E29B-41D4-A716-446655440000",
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
			errMsg:    "run ID cannot be empty",
		},
		{
			name:      "not a UUID",
			input:     "run-42",
			wantError: true,
			errMsg:    "invalid run ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseRunID(tt.input)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
		})
	}
}

func TestRunID_Validate(t *testing.T) {
	assert.NoError(t, NewRunID().Validate())
	assert.Error(t, RunID("").Validate())
	assert.Error(t, RunID("not-a-uuid").Validate())
}

func TestRunID_JSONRoundTrip(t *testing.T) {
	id := RunID(uuid.New().String())

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded RunID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestRunID_MarshalZeroAsNull(t *testing.T) {
	data, err := json.Marshal(RunID(""))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRunID_UnmarshalRejectsGarbage(t *testing.T) {
	var id RunID
	err := json.Unmarshal([]byte(`"run-42"`), &id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run ID")

	// Empty string resets to the zero value without error.
	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.True(t, id.IsZero())
}
