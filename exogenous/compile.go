// Package exogenous compiles externally-observed effects into plannable
// domain actions.
//
// A stream declaration may carry observed atoms: state changes the outside
// world performs once the stream's certified facts hold. Search never calls
// generators, so it can only plan over those changes through a domain action.
// Compile synthesizes one action per observing declaration, demanding the
// declaration's domain and certified atoms and adding the observed atoms.
package exogenous

import (
	"fmt"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/problem"
)

// ActionPrefix names synthesized actions after their declaration.
const ActionPrefix = "observe-"

// Compile appends one synthesized action to the domain for every declaration
// with observed effects, and returns how many it added. The domain is
// modified in place; declarations without observed effects are untouched.
//
// Compilation fails when a synthesized action name is already taken, or when
// an observed predicate is already produced by a regular action: planning
// over a state change owned by both the domain and the outside world is
// ambiguous.
func Compile(domain *problem.Domain, externals []*problem.ExternalDecl) (int, error) {
	names := make(map[string]bool, len(domain.Actions))
	produced := make(map[string]bool)
	for _, a := range domain.Actions {
		names[a.Name] = true
		for _, eff := range a.AddEffects {
			produced[eff.Predicate] = true
		}
	}

	added := 0
	for _, decl := range externals {
		if len(decl.Observed) == 0 {
			continue
		}

		name := ActionPrefix + decl.Name
		if names[name] {
			return added, streamplan.NewError(streamplan.EXOGENOUS_COMPILE_FAILED,
				fmt.Sprintf("synthesized action %q collides with an existing action in domain %q", name, domain.Name))
		}
		for _, obs := range decl.Observed {
			if produced[obs.Predicate] {
				return added, streamplan.NewError(streamplan.EXOGENOUS_COMPILE_FAILED,
					fmt.Sprintf("observed predicate %q of declaration %q is already an effect of a domain action", obs.Predicate, decl.Name))
			}
		}

		params := make([]problem.Variable, 0, len(decl.Inputs)+len(decl.Outputs))
		params = append(params, decl.Inputs...)
		params = append(params, decl.Outputs...)

		pre := make([]problem.Atom, 0, len(decl.Domain)+len(decl.Certified))
		pre = append(pre, decl.Domain...)
		pre = append(pre, decl.Certified...)

		action := &problem.Action{
			Name:          name,
			Parameters:    params,
			Preconditions: pre,
			AddEffects:    append([]problem.Atom{}, decl.Observed...),
			Cost:          problem.UnitCost(),
		}
		domain.Actions = append(domain.Actions, action)
		names[name] = true
		added++
	}

	return added, nil
}
