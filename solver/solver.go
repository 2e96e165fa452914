package solver

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/exogenous"
	"github.com/zero-day-ai/streamplan/ground"
	"github.com/zero-day-ai/streamplan/plan"
	"github.com/zero-day-ai/streamplan/problem"
	"github.com/zero-day-ai/streamplan/search"
	"github.com/zero-day-ai/streamplan/stream"
	"github.com/zero-day-ai/streamplan/telemetry"
)

// DefaultLayers is the number of layered-sweep rounds per incremental
// iteration when none is configured.
const DefaultLayers = 1

// Solver binds a validated problem to its generators and exposes the three
// solving strategies. A Solver may run any strategy multiple times; each run
// owns a fresh evaluation set and queue, so runs never share state.
type Solver struct {
	problem   *problem.Problem
	externals []*stream.External
	searcher  search.Searcher
	logger    *slog.Logger
	tracer    trace.Tracer

	maxTime time.Duration
	maxCost float64
	layers  int
	verbose bool
}

// Option is a functional option for configuring a Solver.
type Option func(*Solver)

// WithSearcher configures the one-shot search procedure. The default is a
// uniform-cost forward searcher.
func WithSearcher(searcher search.Searcher) Option {
	return func(s *Solver) {
		s.searcher = searcher
	}
}

// WithLogger configures the logger for the solver.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithTracer configures the tracer for the solver.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Solver) {
		s.tracer = tracer
	}
}

// WithMaxTime configures the wall-clock budget per run. Zero means no time
// budget; set one whenever a declared stream may never exhaust.
func WithMaxTime(d time.Duration) Option {
	return func(s *Solver) {
		s.maxTime = d
	}
}

// WithMaxCost configures the cost budget per run: an incremental run stops
// once its best plan costs at most this much.
func WithMaxCost(c float64) Option {
	return func(s *Solver) {
		s.maxCost = c
	}
}

// WithLayers configures how many layered-sweep rounds each incremental
// iteration performs between searches.
func WithLayers(n int) Option {
	return func(s *Solver) {
		s.layers = n
	}
}

// WithVerbose logs every stream application at info level instead of debug.
func WithVerbose(verbose bool) Option {
	return func(s *Solver) {
		s.verbose = verbose
	}
}

// New validates the problem, binds every external declaration to a
// registered generator, and compiles externally-observed effects into the
// domain. The domain is mutated in place by that compilation, once, no
// matter how many runs follow.
func New(p *problem.Problem, registry *stream.Registry, opts ...Option) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, streamplan.WrapError(streamplan.PROBLEM_VALIDATION_FAILED, "invalid problem", err)
	}

	externals, err := stream.Bind(p.Externals, registry)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		problem:   p,
		externals: externals,
		searcher:  search.NewForwardSearcher(),
		logger:    slog.Default(),
		maxCost:   plan.Infinity,
		layers:    DefaultLayers,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.layers < 1 {
		s.layers = DefaultLayers
	}

	compiled, err := exogenous.Compile(p.Domain, p.Externals)
	if err != nil {
		return nil, err
	}
	if compiled > 0 {
		s.logger.Debug("compiled exogenous actions", "domain", p.Domain.Name, "actions", compiled)
	}

	return s, nil
}

// SolveCurrent searches once over the parsed evaluations without any stream
// work at all. It returns no plan when the goal needs stream-derived facts;
// it never invokes the grounding engine.
func (s *Solver) SolveCurrent(ctx context.Context) (Solution, error) {
	runID := streamplan.NewRunID()

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, telemetry.SpanSolveCurrent,
			trace.WithAttributes(telemetry.RunAttributes(runID.String(), "current", s.problem.Domain.Name)...))
		defer span.End()
	}

	set := eval.NewSetFromInit(s.problem)

	p, cost, err := s.searcher.Search(ctx, set, s.problem.Domain, s.problem.Goal)
	if err != nil {
		if !budgetStop(err) {
			return Solution{}, err
		}
		p, cost = nil, plan.Infinity
	}

	if span != nil {
		span.SetAttributes(telemetry.PlanAttributes(p, cost)...)
	}
	s.logger.Debug("current solve finished",
		"run_id", runID, "found", p.Found(), "cost", cost)

	return snapshotSolution(p, cost, set), nil
}

// SolveExhaustive drains the queue one advance at a time until every
// instance is exhausted or the time budget elapses, then searches exactly
// once. Appropriate only when streams terminate or a cutoff approximation
// is acceptable.
func (s *Solver) SolveExhaustive(ctx context.Context) (Solution, error) {
	runID := streamplan.NewRunID()

	var span trace.Span
	if s.tracer != nil {
		attrs := telemetry.RunAttributes(runID.String(), "exhaustive", s.problem.Domain.Name)
		if s.maxTime > 0 {
			attrs = append(attrs, attribute.String(telemetry.BudgetMaxTime, s.maxTime.String()))
		}
		ctx, span = s.tracer.Start(ctx, telemetry.SpanSolveExhaustive, trace.WithAttributes(attrs...))
		defer span.End()
	}

	start := time.Now()
	set := eval.NewSetFromInit(s.problem)
	inst := ground.NewInstantiator(set, s.externals, ground.WithLogger(s.logger))

	advances := 0
	for inst.Queue().Len() > 0 && s.withinTime(start) && ctx.Err() == nil {
		if err := s.processNext(ctx, set, inst); err != nil {
			if budgetStop(err) {
				break
			}
			return Solution{}, err
		}
		advances++
	}

	p, cost, err := s.searcher.Search(ctx, set, s.problem.Domain, s.problem.Goal)
	if err != nil {
		if !budgetStop(err) {
			return Solution{}, err
		}
		p, cost = nil, plan.Infinity
	}

	if span != nil {
		span.SetAttributes(telemetry.CombineAttributes(
			telemetry.PlanAttributes(p, cost),
			[]attribute.KeyValue{attribute.Int(telemetry.EvaluationCount, set.Len())},
		)...)
	}
	s.logger.Info("exhaustive solve finished",
		"run_id", runID,
		"advances", advances,
		"evaluations", set.Len(),
		"found", p.Found(),
		"cost", cost,
		"elapsed", time.Since(start))

	return snapshotSolution(p, cost, set), nil
}

// SolveIncremental is the anytime core: it alternates resolving pending
// function instances, one search call, and a layered sweep of stream
// instances, until the store's budgets are met or the queue converges to
// empty. The result always reflects the best plan at exit, possibly none;
// "no plan" is never an error.
func (s *Solver) SolveIncremental(ctx context.Context) (Solution, error) {
	runID := streamplan.NewRunID()

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, telemetry.SpanSolveIncremental,
			trace.WithAttributes(telemetry.CombineAttributes(
				telemetry.RunAttributes(runID.String(), "incremental", s.problem.Domain.Name),
				telemetry.BudgetAttributes(s.maxTime, s.maxCost, s.layers),
			)...))
		defer span.End()
	}

	store := NewStore(s.maxTime, s.maxCost, s.verbose)
	set := eval.NewSetFromInit(s.problem)
	inst := ground.NewInstantiator(set, s.externals, ground.WithLogger(s.logger))

	iterations := 0
	for !s.terminated(ctx, store) {
		iterations++
		s.logger.Info("iteration",
			"run_id", runID,
			"iteration", iterations,
			"evaluations", set.Len(),
			"best_cost", store.BestCost(),
			"elapsed", store.Elapsed())

		if err := s.functionSweep(ctx, set, inst); err != nil {
			if budgetStop(err) {
				break
			}
			return Solution{}, err
		}

		p, cost, err := s.searcher.Search(ctx, set, s.problem.Domain, s.problem.Goal)
		if err != nil {
			if budgetStop(err) {
				break
			}
			return Solution{}, err
		}
		if store.AddPlan(p, cost) {
			s.logger.Info("best plan improved",
				"run_id", runID, "cost", cost, "steps", len(p))
		}

		// Convergence exit: an empty queue means no further evaluation can
		// ever be derived, so another iteration cannot change the outcome.
		if inst.Queue().Len() == 0 {
			break
		}

		if err := s.layeredSweep(ctx, set, inst, store, s.layers); err != nil {
			if budgetStop(err) {
				break
			}
			return Solution{}, err
		}
	}

	if span != nil {
		span.SetAttributes(telemetry.CombineAttributes(
			telemetry.PlanAttributes(store.BestPlan(), store.BestCost()),
			[]attribute.KeyValue{
				attribute.Int(telemetry.RunIterations, iterations),
				attribute.Int(telemetry.EvaluationCount, set.Len()),
			},
		)...)
	}
	s.logger.Info("incremental solve finished",
		"run_id", runID,
		"iterations", iterations,
		"evaluations", set.Len(),
		"found", store.HasSolution(),
		"best_cost", store.BestCost(),
		"elapsed", store.Elapsed())

	return snapshotSolution(store.BestPlan(), store.BestCost(), set), nil
}

// withinTime reports whether an exhaustive drain may continue.
func (s *Solver) withinTime(start time.Time) bool {
	return s.maxTime <= 0 || time.Since(start) < s.maxTime
}
