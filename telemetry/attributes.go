package telemetry

import (
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-day-ai/streamplan/plan"
)

// Streamplan-specific attribute keys for telemetry
const (
	// RunID is the unique identifier of one solving run
	RunID = "streamplan.run.id"

	// RunStrategy is the solving strategy of the run
	RunStrategy = "streamplan.run.strategy"

	// RunIterations is the number of outer iterations a run performed
	RunIterations = "streamplan.run.iterations"

	// ProblemDomain is the name of the planning domain
	ProblemDomain = "streamplan.problem.domain"

	// ProblemExternals is the number of declared externals
	ProblemExternals = "streamplan.problem.externals"

	// BudgetMaxTime is the wall-clock budget of the run
	BudgetMaxTime = "streamplan.budget.max_time"

	// BudgetMaxCost is the plan cost budget of the run
	BudgetMaxCost = "streamplan.budget.max_cost"

	// BudgetLayers is the configured layer count per iteration
	BudgetLayers = "streamplan.budget.layers"

	// EvaluationCount is the size of the evaluation set at a given point
	EvaluationCount = "streamplan.evaluations.count"

	// QueueLength is the instance queue length at a given point
	QueueLength = "streamplan.queue.length"

	// InstanceSignature identifies a grounded stream instance
	InstanceSignature = "streamplan.instance.signature"

	// InstanceKind is the kind tag of a grounded instance
	InstanceKind = "streamplan.instance.kind"

	// PlanFound reports whether a run produced a plan
	PlanFound = "streamplan.plan.found"

	// PlanCost is the cost of the best plan found
	PlanCost = "streamplan.plan.cost"

	// PlanSteps is the number of steps in the best plan found
	PlanSteps = "streamplan.plan.steps"
)

// Streamplan span name constants for solver operations
const (
	// SpanSolveCurrent represents a no-stream solve
	SpanSolveCurrent = "streamplan.solve.current"

	// SpanSolveExhaustive represents an exhaustive solve
	SpanSolveExhaustive = "streamplan.solve.exhaustive"

	// SpanSolveIncremental represents an incremental solve
	SpanSolveIncremental = "streamplan.solve.incremental"
)

// RunAttributes creates OpenTelemetry attributes identifying a solving run.
func RunAttributes(runID, strategy, domain string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RunID, runID),
		attribute.String(RunStrategy, strategy),
		attribute.String(ProblemDomain, domain),
	}
}

// BudgetAttributes creates OpenTelemetry attributes for a run's budgets. A
// zero maxTime means no time budget; the key is omitted entirely.
func BudgetAttributes(maxTime time.Duration, maxCost float64, layers int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Float64(BudgetMaxCost, maxCost),
		attribute.Int(BudgetLayers, layers),
	}

	if maxTime > 0 {
		attrs = append(attrs, attribute.String(BudgetMaxTime, maxTime.String()))
	}

	return attrs
}

// PlanAttributes creates OpenTelemetry attributes for a run's best answer.
func PlanAttributes(p plan.Plan, cost float64) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Bool(PlanFound, p.Found()),
	}

	if p.Found() {
		attrs = append(attrs,
			attribute.Float64(PlanCost, cost),
			attribute.Int(PlanSteps, len(p)),
		)
	}

	return attrs
}

// ErrorAttributes creates OpenTelemetry attributes for error tracking.
func ErrorAttributes(err error, code string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	}

	if code != "" {
		attrs = append(attrs, attribute.String("error.code", code))
	}

	return attrs
}

// CombineAttributes merges multiple attribute slices into one.
func CombineAttributes(attrSets ...[]attribute.KeyValue) []attribute.KeyValue {
	var totalLen int
	for _, attrs := range attrSets {
		totalLen += len(attrs)
	}

	combined := make([]attribute.KeyValue, 0, totalLen)
	for _, attrs := range attrSets {
		combined = append(combined, attrs...)
	}

	return combined
}
