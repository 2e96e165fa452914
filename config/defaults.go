package config

import (
	"github.com/zero-day-ai/streamplan/plan"
	"github.com/zero-day-ai/streamplan/search"
	"github.com/zero-day-ai/streamplan/solver"
	"github.com/zero-day-ai/streamplan/telemetry"
)

// DefaultConfig returns a configuration with sensible defaults:
//   - solver: no time budget, unbounded cost, one grounding layer per
//     iteration, quiet logs
//   - search: DefaultMaxExpansions node expansions per search call
//   - logging: info level, JSON format, stderr output
//   - tracing: disabled
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			MaxTime: 0,
			MaxCost: plan.Infinity,
			Layers:  solver.DefaultLayers,
			Verbose: false,
		},
		Search: SearchConfig{
			MaxExpansions: search.DefaultMaxExpansions,
		},
		Logging: telemetry.LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Tracing: telemetry.TracingConfig{
			Enabled:     false,
			Provider:    "otlp",
			Endpoint:    "localhost:4317",
			ServiceName: "streamplan",
			SampleRate:  1.0,
		},
	}
}
