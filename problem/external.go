package problem

import (
	"fmt"
	"strings"
)

// ExternalKind discriminates the two flavors of external declaration. The
// kind is data carried by the declaration, not a runtime property of any
// implementation, so queue strategies can branch on it without type checks.
type ExternalKind string

const (
	// KindStream marks a general stream: zero or more output tuples per
	// input binding, certifying relational facts.
	KindStream ExternalKind = "stream"

	// KindFunction marks a function external: exactly one numeric value per
	// input binding, certifying its own head atom.
	KindFunction ExternalKind = "function"
)

// IsValid reports whether the kind is one of the declared constants.
func (k ExternalKind) IsValid() bool {
	return k == KindStream || k == KindFunction
}

// String returns the kind's text form.
func (k ExternalKind) String() string {
	return string(k)
}

// ExternalDecl is the pure-data declaration of an external: its name, kind,
// input and output variables, and the atom patterns that gate and describe
// it. Declarations carry no behavior; a generator is bound to a declaration
// by name when a problem is handed to a solver.
type ExternalDecl struct {
	// Name identifies the external; generators are registered under it.
	Name string `json:"name"`

	// Kind is the declaration's flavor: stream or function.
	Kind ExternalKind `json:"kind"`

	// Inputs are the variables an instance is grounded over.
	Inputs []Variable `json:"inputs"`

	// Outputs are the variables bound by each yielded result. Always empty
	// for functions.
	Outputs []Variable `json:"outputs,omitempty"`

	// Domain are atom patterns over Inputs. An instance exists for an input
	// binding exactly when every domain atom is certified under it.
	Domain []Atom `json:"domain"`

	// Certified are atom patterns over Inputs and Outputs describing the
	// facts each result certifies. Empty for functions, which certify their
	// head atom implicitly.
	Certified []Atom `json:"certified,omitempty"`

	// Observed are atom patterns over Inputs and Outputs describing effects
	// that occur outside the planner's control. Declarations with observed
	// effects are compiled into domain actions before solving.
	Observed []Atom `json:"observed,omitempty"`
}

// Head returns the declaration's head atom: the name applied to the input
// variables. For functions this is the atom whose value each evaluation
// certifies.
func (d *ExternalDecl) Head() Atom {
	args := make([]Term, len(d.Inputs))
	for i, v := range d.Inputs {
		args[i] = Term(v)
	}
	return Atom{Predicate: d.Name, Args: args}
}

// CertifiedAtoms returns the patterns certified per result: the declared
// Certified list for streams, the implicit head for functions.
func (d *ExternalDecl) CertifiedAtoms() []Atom {
	if d.Kind == KindFunction {
		return []Atom{d.Head()}
	}
	return d.Certified
}

// Validate checks the declaration's internal consistency: valid kind,
// well-formed variable lists, domain patterns closed over inputs, and
// certified/observed patterns closed over inputs plus outputs. Function
// declarations must not declare outputs or explicit certified atoms.
func (d *ExternalDecl) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("external name cannot be empty")
	}
	if !d.Kind.IsValid() {
		return fmt.Errorf("external %q: unknown kind %q", d.Name, d.Kind)
	}

	seen := make(map[Variable]bool, len(d.Inputs)+len(d.Outputs))
	addVars := func(group string, vars []Variable) error {
		for _, v := range vars {
			if !strings.HasPrefix(string(v), "?") {
				return fmt.Errorf("external %q: %s variable %q must start with '?'", d.Name, group, v)
			}
			if seen[v] {
				return fmt.Errorf("external %q: duplicate variable %q", d.Name, v)
			}
			seen[v] = true
		}
		return nil
	}
	if err := addVars("input", d.Inputs); err != nil {
		return err
	}
	inputs := make(map[Variable]bool, len(d.Inputs))
	for _, v := range d.Inputs {
		inputs[v] = true
	}
	if err := addVars("output", d.Outputs); err != nil {
		return err
	}

	covered := make(map[Variable]bool, len(d.Inputs))
	for _, atom := range d.Domain {
		for _, v := range atom.Variables() {
			if !inputs[v] {
				return fmt.Errorf("external %q: domain atom %s uses non-input variable %q",
					d.Name, atom, v)
			}
			covered[v] = true
		}
	}
	// An input no domain atom mentions can never be bound by grounding.
	for _, v := range d.Inputs {
		if !covered[v] {
			return fmt.Errorf("external %q: input %q does not appear in any domain atom", d.Name, v)
		}
	}
	checkScope := func(group string, atoms []Atom) error {
		for _, atom := range atoms {
			for _, v := range atom.Variables() {
				if !seen[v] {
					return fmt.Errorf("external %q: %s atom %s uses undeclared variable %q",
						d.Name, group, atom, v)
				}
			}
		}
		return nil
	}
	if err := checkScope("certified", d.Certified); err != nil {
		return err
	}
	if err := checkScope("observed", d.Observed); err != nil {
		return err
	}

	if d.Kind == KindFunction {
		if len(d.Outputs) > 0 {
			return fmt.Errorf("external %q: functions cannot declare outputs", d.Name)
		}
		if len(d.Certified) > 0 {
			return fmt.Errorf("external %q: functions certify their head implicitly; remove certified atoms", d.Name)
		}
		if len(d.Observed) > 0 {
			return fmt.Errorf("external %q: functions cannot declare observed effects", d.Name)
		}
	}
	return nil
}
