package solver

import (
	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/plan"
)

// Solution is the uniform result of every solving strategy: the best plan
// found (nil when none), its cost (plan.Infinity when none), and a snapshot
// of every evaluation certified during the run. Strategies never report "no
// plan" as an error; callers test Found.
type Solution struct {
	Plan        plan.Plan
	Cost        float64
	Evaluations []eval.Evaluation
}

// Found reports whether the run produced a plan.
func (s Solution) Found() bool {
	return s.Plan.Found()
}

// snapshotSolution packages a run's outcome. The plan and the evaluation set
// are snapshotted so later runs cannot alias into a returned Solution.
func snapshotSolution(p plan.Plan, cost float64, set *eval.Set) Solution {
	out := Solution{Cost: cost, Evaluations: set.All()}
	if p.Found() {
		out.Plan = append(plan.Empty(), p...)
	}
	return out
}
