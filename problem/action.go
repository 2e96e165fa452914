package problem

import (
	"fmt"
	"strings"
)

// CostSpec describes how the cost of a ground action is computed: a constant
// part plus, optionally, the value of a function atom evaluated under the
// action's binding. The zero value is a genuine zero-cost action; YAML
// problems that omit the cost block entirely load with unit cost instead.
type CostSpec struct {
	// Constant is the fixed cost component.
	Constant float64 `json:"constant"`

	// Function, when non-nil, is a lifted function head over the action's
	// parameters. The evaluated value under the action's binding is added to
	// Constant. A ground action whose function value has not been certified
	// yet has no defined cost and is not applicable.
	Function *Atom `json:"function,omitempty"`
}

// UnitCost is the default cost spec for actions that declare none.
func UnitCost() CostSpec {
	return CostSpec{Constant: 1}
}

// Action is a lifted action schema: parameters, a precondition conjunction,
// add and delete effects, and a cost spec. Ground actions are produced by
// binding every parameter to an object.
type Action struct {
	// Name identifies the schema within its domain.
	Name string `json:"name"`

	// Parameters are the schema's variables in declaration order.
	Parameters []Variable `json:"parameters"`

	// Preconditions is the conjunction of atoms that must all be certified
	// for a bound instance to be applicable.
	Preconditions []Atom `json:"preconditions"`

	// AddEffects are the atoms certified by applying the action.
	AddEffects []Atom `json:"add_effects"`

	// DeleteEffects are the atoms retracted from the search state by applying
	// the action. They never remove entries from an evaluation set; deletion
	// is a search-state notion only.
	DeleteEffects []Atom `json:"delete_effects"`

	// Cost is the action's cost spec.
	Cost CostSpec `json:"cost"`
}

// Validate checks the schema's internal consistency: a non-empty name, no
// duplicate parameters, and no free variables in preconditions, effects, or
// the cost function.
func (a *Action) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("action name cannot be empty")
	}

	declared := make(map[Variable]bool, len(a.Parameters))
	for _, p := range a.Parameters {
		if !strings.HasPrefix(string(p), "?") {
			return fmt.Errorf("action %q: parameter %q must start with '?'", a.Name, p)
		}
		if declared[p] {
			return fmt.Errorf("action %q: duplicate parameter %q", a.Name, p)
		}
		declared[p] = true
	}

	check := func(group string, atoms []Atom) error {
		for _, atom := range atoms {
			for _, v := range atom.Variables() {
				if !declared[v] {
					return fmt.Errorf("action %q: %s atom %s uses undeclared variable %q",
						a.Name, group, atom, v)
				}
			}
		}
		return nil
	}
	if err := check("precondition", a.Preconditions); err != nil {
		return err
	}
	if err := check("add effect", a.AddEffects); err != nil {
		return err
	}
	if err := check("delete effect", a.DeleteEffects); err != nil {
		return err
	}
	if a.Cost.Function != nil {
		for _, v := range a.Cost.Function.Variables() {
			if !declared[v] {
				return fmt.Errorf("action %q: cost function %s uses undeclared variable %q",
					a.Name, a.Cost.Function, v)
			}
		}
	}
	if a.Cost.Constant < 0 {
		return fmt.Errorf("action %q: cost constant must be non-negative", a.Name)
	}
	return nil
}
