// Package plan defines the plan value types a search produces: ordered
// ground steps with their costs.
package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/zero-day-ai/streamplan/problem"
)

// Infinity is the cost reported when no plan is known.
var Infinity = math.Inf(1)

// Step is one ground action application: the schema name, the objects bound
// to its parameters in declaration order, and the step's evaluated cost.
type Step struct {
	// Action is the action schema name.
	Action string `json:"action"`

	// Args are the objects bound to the schema's parameters.
	Args []problem.Object `json:"args"`

	// Cost is the step's evaluated cost under the binding.
	Cost float64 `json:"cost"`
}

// String renders the step like a ground atom: "move(q0,q1)".
func (s Step) String() string {
	if len(s.Args) == 0 {
		return s.Action + "()"
	}
	parts := make([]string, len(s.Args))
	for i, o := range s.Args {
		parts[i] = string(o)
	}
	return fmt.Sprintf("%s(%s)", s.Action, strings.Join(parts, ","))
}

// Plan is an ordered sequence of ground steps. A nil Plan means "no plan";
// an empty non-nil Plan is a valid answer whose goal held in the initial
// state. The two are distinct everywhere in this module.
type Plan []Step

// Empty builds the zero-step plan, distinct from no plan at all.
func Empty() Plan {
	return Plan{}
}

// Found reports whether the plan exists, including the empty plan.
func (p Plan) Found() bool {
	return p != nil
}

// Cost returns the summed step cost, or Infinity for no plan.
func (p Plan) Cost() float64 {
	if p == nil {
		return Infinity
	}
	total := 0.0
	for _, s := range p {
		total += s.Cost
	}
	return total
}

// String renders the plan as "move(q0,q1); scan(q1)", "<empty>" for the
// zero-step plan, and "<none>" for no plan.
func (p Plan) String() string {
	if p == nil {
		return "<none>"
	}
	if len(p) == 0 {
		return "<empty>"
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}
