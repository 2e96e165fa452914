// Package config loads and validates streamplan configuration from YAML
// files, with environment variable interpolation and sensible defaults.
package config

import (
	"time"

	"github.com/zero-day-ai/streamplan/search"
	"github.com/zero-day-ai/streamplan/solver"
	"github.com/zero-day-ai/streamplan/telemetry"
)

// Config is the root configuration for a streamplan deployment.
type Config struct {
	Solver  SolverConfig            `mapstructure:"solver" yaml:"solver"`
	Search  SearchConfig            `mapstructure:"search" yaml:"search"`
	Logging telemetry.LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tracing telemetry.TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// SolverConfig contains the budgets and knobs of a solving run.
type SolverConfig struct {
	// MaxTime is the wall-clock budget. Zero means no time budget.
	MaxTime time.Duration `mapstructure:"max_time" yaml:"max_time" validate:"min=0"`

	// MaxCost is the plan cost budget: a run terminates once the best plan
	// costs at most this much. Loaded files usually set a finite budget; the
	// default is unbounded.
	MaxCost float64 `mapstructure:"max_cost" yaml:"max_cost" validate:"min=0"`

	// Layers is how many grounding rounds each iteration processes before
	// the next search.
	Layers int `mapstructure:"layers" yaml:"layers" validate:"min=1,max=100"`

	// Verbose elevates per-application solver logs to info level.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// SearchConfig contains discrete search settings.
type SearchConfig struct {
	// MaxExpansions bounds node expansions per search call.
	MaxExpansions int `mapstructure:"max_expansions" yaml:"max_expansions" validate:"min=1"`
}

// SolverOptions converts the solver section into solver options.
func (c *Config) SolverOptions() []solver.Option {
	return []solver.Option{
		solver.WithMaxTime(c.Solver.MaxTime),
		solver.WithMaxCost(c.Solver.MaxCost),
		solver.WithLayers(c.Solver.Layers),
		solver.WithVerbose(c.Solver.Verbose),
	}
}

// SearchOptions converts the search section into forward searcher options.
func (c *Config) SearchOptions() []search.ForwardOption {
	return []search.ForwardOption{
		search.WithMaxExpansions(c.Search.MaxExpansions),
	}
}
