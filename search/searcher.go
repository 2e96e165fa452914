// Package search implements the one-shot plan search invoked between stream
// advances: a self-contained search over the facts certified so far.
//
// A Searcher sees only the evaluation set it is handed. It never invokes
// generators or touches the instance queue, so a search call can be treated
// as an opaque, bounded unit of work by the solving strategies.
package search

import (
	"context"

	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/plan"
	"github.com/zero-day-ai/streamplan/problem"
)

// Searcher is the one-shot search contract. Search returns the best plan it
// found over the given evaluation set together with that plan's cost, or a
// nil plan and plan.Infinity when the goal is unreachable within the
// searcher's own bounds. Failing to find a plan is not an error; errors
// report internal faults only.
type Searcher interface {
	Search(ctx context.Context, set *eval.Set, domain *problem.Domain, goal []problem.Atom) (plan.Plan, float64, error)
}

// Func adapts a plain function to the Searcher interface.
type Func func(ctx context.Context, set *eval.Set, domain *problem.Domain, goal []problem.Atom) (plan.Plan, float64, error)

// Search implements Searcher.
func (f Func) Search(ctx context.Context, set *eval.Set, domain *problem.Domain, goal []problem.Atom) (plan.Plan, float64, error) {
	return f(ctx, set, domain, goal)
}
