// Package solver composes grounding, stream evaluation, and one-shot search
// into the three top-level solving strategies.
//
// # Overview
//
// A Solver is built once from a problem and a generator registry. Building
// validates the problem, binds every external declaration to its generator,
// and compiles externally-observed effects into the domain. Each call to a
// strategy then owns a fresh evaluation set, grounding engine, and solution
// store:
//
//   - SolveCurrent searches once over the initial evaluations and never
//     touches a stream.
//   - SolveExhaustive drains the instance queue until it empties or the time
//     budget elapses, then searches once.
//   - SolveIncremental alternates function sweeps, search, and layered
//     sweeps until a budget is met or the queue converges to empty.
//
// All three return a Solution rather than an error when no plan exists;
// callers test Solution.Found. The incremental strategy is anytime: its
// best recorded cost never regresses, and whatever is best when a budget
// expires is the answer.
//
// # Budgets
//
// Budgets are advisory and polled between discrete steps: at the top of the
// outer loop, before every probe of a layered sweep, and between advances of
// an exhaustive drain. A slow generator or search call can overrun them;
// nothing is preempted. Context cancellation is folded into the same polls
// and ends a run gracefully with the best answer so far.
//
// # Error Handling
//
// A generator fault aborts the run and propagates as a STREAM_GENERATOR_FAILED
// error. Problem validation and binding failures surface from New with
// PROBLEM_VALIDATION_FAILED and EXTERNAL_UNBOUND codes. Budget exhaustion,
// stream exhaustion, and "no plan yet" are normal outcomes, never errors.
//
// # Thread Safety
//
// A Solver is safe to share once built; every run's mutable state is local
// to the call. The Store is internally locked, but a single run is entirely
// single-threaded and synchronous.
package solver
