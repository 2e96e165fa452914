package problem

import (
	"fmt"
)

// Domain is the lifted action model: named action schemas plus optional
// predicate and function declarations used for validation.
type Domain struct {
	// Name labels the domain in logs and traces.
	Name string `json:"name"`

	// Predicates optionally declares the relation names the domain uses.
	// When non-empty, atoms over undeclared predicates fail validation.
	Predicates []string `json:"predicates,omitempty"`

	// Functions optionally declares the numeric function names the domain
	// uses in cost specs and function externals.
	Functions []string `json:"functions,omitempty"`

	// Actions are the lifted action schemas.
	Actions []*Action `json:"actions"`
}

// Action returns the schema with the given name, or nil.
func (d *Domain) Action(name string) *Action {
	for _, a := range d.Actions {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// InitEntry is one entry of the initial state: a ground atom, optionally
// carrying a numeric value for function initializations.
type InitEntry struct {
	// Atom is the certified ground atom.
	Atom Atom `json:"atom"`

	// Value is the function value for function initializations, nil for
	// plain relational facts.
	Value *float64 `json:"value,omitempty"`
}

// Problem aggregates everything a solving run starts from: the domain, the
// initial state, the goal conjunction, and the external declarations whose
// generators derive new facts during solving.
type Problem struct {
	Domain    *Domain         `json:"domain"`
	Init      []InitEntry     `json:"init"`
	Goal      []Atom          `json:"goal"`
	Externals []*ExternalDecl `json:"externals,omitempty"`
}

// External returns the declaration with the given name, or nil.
func (p *Problem) External(name string) *ExternalDecl {
	for _, d := range p.Externals {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Validate checks cross-cutting consistency of the whole problem: valid
// actions and externals, unique action and external names, ground init
// atoms, ground goal atoms, and - when the domain declares predicates or
// functions - closed vocabularies for every atom in the problem.
func (p *Problem) Validate() error {
	if p.Domain == nil {
		return fmt.Errorf("problem has no domain")
	}

	actionNames := make(map[string]bool, len(p.Domain.Actions))
	for _, a := range p.Domain.Actions {
		if err := a.Validate(); err != nil {
			return err
		}
		if actionNames[a.Name] {
			return fmt.Errorf("duplicate action name %q", a.Name)
		}
		actionNames[a.Name] = true
	}

	externalNames := make(map[string]bool, len(p.Externals))
	for _, d := range p.Externals {
		if err := d.Validate(); err != nil {
			return err
		}
		if externalNames[d.Name] {
			return fmt.Errorf("duplicate external name %q", d.Name)
		}
		externalNames[d.Name] = true
	}

	for _, e := range p.Init {
		if !e.Atom.IsGround() {
			return fmt.Errorf("init atom %s is not ground", e.Atom)
		}
		if e.Value != nil && *e.Value < 0 {
			return fmt.Errorf("init atom %s has a negative function value", e.Atom)
		}
	}
	if len(p.Goal) == 0 {
		return fmt.Errorf("problem has no goal")
	}
	for _, g := range p.Goal {
		if !g.IsGround() {
			return fmt.Errorf("goal atom %s is not ground", g)
		}
	}

	return p.validateVocabulary()
}

// validateVocabulary enforces the optional predicate/function declarations
// against every atom the problem mentions.
func (p *Problem) validateVocabulary() error {
	if len(p.Domain.Predicates) == 0 && len(p.Domain.Functions) == 0 {
		return nil
	}

	preds := make(map[string]bool, len(p.Domain.Predicates))
	for _, name := range p.Domain.Predicates {
		preds[name] = true
	}
	funcs := make(map[string]bool, len(p.Domain.Functions))
	for _, name := range p.Domain.Functions {
		funcs[name] = true
	}
	// Stream-certified predicates are part of the vocabulary even when the
	// domain does not redeclare them.
	for _, d := range p.Externals {
		if d.Kind == KindFunction {
			funcs[d.Name] = true
			continue
		}
		for _, atom := range d.Certified {
			preds[atom.Predicate] = true
		}
		for _, atom := range d.Observed {
			preds[atom.Predicate] = true
		}
	}

	checkAtom := func(where string, atom Atom, wantFunc bool) error {
		if wantFunc {
			if !funcs[atom.Predicate] {
				return fmt.Errorf("%s: undeclared function %q in %s", where, atom.Predicate, atom)
			}
			return nil
		}
		if !preds[atom.Predicate] {
			return fmt.Errorf("%s: undeclared predicate %q in %s", where, atom.Predicate, atom)
		}
		return nil
	}

	for _, a := range p.Domain.Actions {
		where := fmt.Sprintf("action %q", a.Name)
		for _, atom := range a.Preconditions {
			if err := checkAtom(where, atom, false); err != nil {
				return err
			}
		}
		for _, atom := range a.AddEffects {
			if err := checkAtom(where, atom, false); err != nil {
				return err
			}
		}
		for _, atom := range a.DeleteEffects {
			if err := checkAtom(where, atom, false); err != nil {
				return err
			}
		}
		if a.Cost.Function != nil {
			if err := checkAtom(where, *a.Cost.Function, true); err != nil {
				return err
			}
		}
	}
	for _, e := range p.Init {
		want := e.Value != nil
		if err := checkAtom("init", e.Atom, want); err != nil {
			return err
		}
	}
	for _, g := range p.Goal {
		if err := checkAtom("goal", g, false); err != nil {
			return err
		}
	}
	for _, d := range p.Externals {
		where := fmt.Sprintf("external %q", d.Name)
		for _, atom := range d.Domain {
			if preds[atom.Predicate] || funcs[atom.Predicate] {
				continue
			}
			return fmt.Errorf("%s: undeclared predicate %q in domain atom %s", where, atom.Predicate, atom)
		}
	}
	return nil
}
