// Package streamplan provides shared types for the streamplan planning
// library: structured errors with namespaced codes and UUID-backed run
// identifiers.
//
// # Overview
//
// streamplan is an incremental, anytime planner that interleaves discrete
// plan search over a growing set of certified facts with "stream" generators
// that derive new facts on demand. A run never regresses its best answer,
// respects wall-clock and plan-cost budgets, and terminates on its own when
// no further facts can ever be derived.
//
// The module is organized leaves-first:
//
//   - problem:   symbols, atoms, action schemas, external declarations, and
//     the YAML problem format
//   - eval:      the evaluation set (certified facts and function values)
//   - stream:    generator contracts and stream instances
//   - ground:    the instance queue and the grounding engine
//   - plan:      plan and step value types
//   - search:    the one-shot search contract and the default forward search
//   - exogenous: compilation of observed effects into plannable actions
//   - solver:    the solution store, queue-processing strategies, and the
//     three solving entry points (SolveCurrent, SolveExhaustive,
//     SolveIncremental)
//   - config:    settings files with validation
//   - telemetry: OpenTelemetry tracing and trace-correlated logging
//
// # Error Handling
//
// All packages report failures as *StreamPlanError values carrying a
// namespaced ErrorCode, an operator-readable message, and a wrapped cause.
// Use errors.As to recover the structured form and errors.Is to match on
// codes. Exhausting a budget and finding no plan are not errors; they are
// ordinary outcomes reported through solver.Solution.
//
// # Thread Safety
//
// The solver core is single-threaded and synchronous. An evaluation set,
// instance queue, and solution store are exclusively owned by one solving
// call for its full duration.
package streamplan
