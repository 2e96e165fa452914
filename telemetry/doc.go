// Package telemetry provides observability infrastructure for streamplan
// solving runs.
//
// This package implements distributed tracing, structured logging with trace
// correlation, and the attribute vocabulary solver spans use. It follows
// OpenTelemetry standards so runs can be inspected with any vendor-neutral
// tracing backend.
//
// # Distributed Tracing
//
// Tracing gives end-to-end visibility into a solving run: the outer solve
// span plus one nested span per search call. Stream advances are logged, not
// traced; they are too fine-grained to span individually.
//
// Initialize tracing with InitTracing:
//
//	cfg := telemetry.TracingConfig{
//	    Enabled:     true,
//	    Provider:    "otlp",
//	    Endpoint:    "localhost:4317",
//	    ServiceName: "streamplan",
//	    SampleRate:  1.0,
//	}
//
//	tp, err := telemetry.InitTracing(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer telemetry.ShutdownTracing(ctx, tp)
//
// Supported tracing providers:
//
//   - "otlp": OpenTelemetry Protocol (gRPC) - production standard
//   - "noop": No-op provider for testing - zero overhead
//
// The OTLP exporter dials with system TLS by default. Point TLSCertFile at a
// certificate bundle for private CAs, or set InsecureMode for plaintext
// collectors in local development.
//
// # Solver Attributes
//
// Solver spans carry a streamplan-prefixed attribute vocabulary:
//
//	span.SetAttributes(
//	    attribute.String(telemetry.RunID, runID),
//	    attribute.String(telemetry.RunStrategy, "incremental"),
//	    attribute.Float64(telemetry.PlanCost, 4.2),
//	)
//
// The helper constructors bundle the common groups:
//
//	span.SetAttributes(telemetry.CombineAttributes(
//	    telemetry.RunAttributes(runID, "incremental", domain),
//	    telemetry.BudgetAttributes(maxTime, maxCost, layers),
//	)...)
//
// Standard solver span names:
//
//   - "streamplan.solve.current": a single search over the current facts
//   - "streamplan.solve.exhaustive": drain all streams, then search
//   - "streamplan.solve.incremental": the interleaved anytime loop
//
// # Structured Logging
//
// TracedLogger provides structured logging with automatic trace correlation.
// Entries logged under an active span carry trace_id and span_id alongside
// the run context:
//
//	handler := telemetry.NewJSONHandler(os.Stdout, slog.LevelInfo)
//	logger := telemetry.NewTracedLogger(handler, runID, domainName)
//
//	logger.Info(ctx, "iteration",
//	    "iteration", 3,
//	    "evaluations", set.Len(),
//	    "best_cost", store.BestCost(),
//	)
//
// NewHandler builds a handler straight from a LoggingConfig; ParseLevel maps
// the config's level string onto a slog.Level.
//
// # Configuration
//
// Both config structs carry yaml and mapstructure tags, validate themselves,
// and are embedded by the top-level config package:
//
//	type TracingConfig struct {
//	    Enabled      bool    // Enable/disable tracing
//	    Provider     string  // "otlp" or "noop"
//	    Endpoint     string  // Exporter endpoint (e.g., "localhost:4317")
//	    ServiceName  string  // Service name in traces
//	    SampleRate   float64 // Sampling rate (0.0-1.0)
//	    TLSCertFile  string  // Client TLS certificate file
//	    InsecureMode bool    // Disable TLS verification (unsafe)
//	}
//
//	type LoggingConfig struct {
//	    Level  string // "debug", "info", "warn", "error"
//	    Format string // "json" or "text"
//	    Output string // "stdout", "stderr", or absolute file path
//	}
//
// # Error Handling
//
// Initialization failures surface as StreamPlanError values:
//
//   - TRACING_INIT_FAILED: invalid configuration or unreachable exporter
//   - TRACING_SHUTDOWN_FAILED: flush failed during shutdown
//
// # Performance Considerations
//
//   - Use sampling in production to reduce trace volume
//   - Use the noop provider in tests to eliminate overhead
//   - Spans batch before export; bound shutdown with a context timeout so
//     the final flush completes
package telemetry
