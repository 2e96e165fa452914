package problem

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zero-day-ai/streamplan"
	"gopkg.in/yaml.v3"
)

// YAMLProblem represents the top-level structure of a problem YAML file.
// This structure maps directly to the YAML format for problem definitions.
type YAMLProblem struct {
	Domain    YAMLDomain      `yaml:"domain"`
	Init      []YAMLInitEntry `yaml:"init"`
	Goal      []string        `yaml:"goal"`
	Externals []YAMLExternal  `yaml:"externals,omitempty"`
}

// YAMLDomain represents the domain section: the action model plus optional
// predicate and function declarations.
type YAMLDomain struct {
	Name       string       `yaml:"name"`
	Predicates []string     `yaml:"predicates,omitempty"`
	Functions  []string     `yaml:"functions,omitempty"`
	Actions    []YAMLAction `yaml:"actions"`
}

// YAMLAction represents one action schema. Atoms are written in their text
// form, e.g. "at(?from)".
type YAMLAction struct {
	Name          string      `yaml:"name"`
	Parameters    []string    `yaml:"parameters,omitempty"`
	Preconditions []string    `yaml:"preconditions,omitempty"`
	Effects       YAMLEffects `yaml:"effects"`
	Cost          *YAMLCost   `yaml:"cost,omitempty"`
}

// YAMLEffects groups an action's add and delete lists.
type YAMLEffects struct {
	Add    []string `yaml:"add,omitempty"`
	Delete []string `yaml:"delete,omitempty"`
}

// YAMLCost represents an action cost spec. Omitting the block entirely means
// unit cost; an empty block means zero constant cost.
type YAMLCost struct {
	Constant float64 `yaml:"constant,omitempty"`
	Function string  `yaml:"function,omitempty"`
}

// YAMLInitEntry represents one initial-state entry. It supports both string
// and object forms:
//   - Fact form:     "at(q0)"
//   - Value form:    "dist(q0,q1) = 3.5"
//   - Object form:   { atom: "dist(q0,q1)", value: 3.5 }
type YAMLInitEntry struct {
	Atom  string   `yaml:"atom"`
	Value *float64 `yaml:"value,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling to handle both string and object forms
func (e *YAMLInitEntry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		if i := strings.IndexByte(str, '='); i >= 0 {
			val, err := strconv.ParseFloat(strings.TrimSpace(str[i+1:]), 64)
			if err != nil {
				return fmt.Errorf("init entry %q has an invalid function value: %w", str, err)
			}
			e.Atom = strings.TrimSpace(str[:i])
			e.Value = &val
			return nil
		}
		e.Atom = strings.TrimSpace(str)
		return nil
	}

	type rawEntry YAMLInitEntry
	var raw rawEntry
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("init entry must be either an atom string or an {atom, value} object: %w", err)
	}

	*e = YAMLInitEntry(raw)
	return nil
}

// YAMLExternal represents one external declaration.
type YAMLExternal struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Inputs    []string `yaml:"inputs,omitempty"`
	Outputs   []string `yaml:"outputs,omitempty"`
	Domain    []string `yaml:"domain,omitempty"`
	Certified []string `yaml:"certified,omitempty"`
	Observed  []string `yaml:"observed,omitempty"`
}

// ParseProblem parses a YAML problem definition from raw bytes and converts
// it to a Problem. The returned problem has passed full validation.
//
// Returns an error if:
//   - YAML is malformed or invalid
//   - Any atom text fails to parse
//   - The converted problem fails Validate (duplicate names, unground init
//     or goal atoms, open variable scopes, vocabulary violations)
func ParseProblem(data []byte) (*Problem, error) {
	var yp YAMLProblem
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return nil, streamplan.WrapError(streamplan.PROBLEM_PARSE_FAILED,
			"failed to parse problem YAML", err)
	}

	p, err := convertYAMLProblem(&yp)
	if err != nil {
		return nil, streamplan.WrapError(streamplan.PROBLEM_PARSE_FAILED,
			"failed to convert problem definition", err)
	}

	if err := p.Validate(); err != nil {
		return nil, streamplan.WrapError(streamplan.PROBLEM_VALIDATION_FAILED,
			"problem definition is invalid", err)
	}

	return p, nil
}

// ParseProblemFile reads a problem definition from a YAML file and parses it.
// This is a convenience wrapper around ParseProblem that handles file I/O.
func ParseProblemFile(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, streamplan.WrapError(streamplan.PROBLEM_NOT_FOUND,
			fmt.Sprintf("failed to read problem file %s", path), err)
	}

	return ParseProblem(data)
}

// convertYAMLProblem converts the YAML representation into the model types.
func convertYAMLProblem(yp *YAMLProblem) (*Problem, error) {
	if yp.Domain.Name == "" {
		return nil, fmt.Errorf("domain name is required")
	}

	domain := &Domain{
		Name:       yp.Domain.Name,
		Predicates: yp.Domain.Predicates,
		Functions:  yp.Domain.Functions,
		Actions:    make([]*Action, 0, len(yp.Domain.Actions)),
	}
	for i := range yp.Domain.Actions {
		action, err := convertYAMLAction(&yp.Domain.Actions[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert action %q: %w", yp.Domain.Actions[i].Name, err)
		}
		domain.Actions = append(domain.Actions, action)
	}

	p := &Problem{
		Domain:    domain,
		Init:      make([]InitEntry, 0, len(yp.Init)),
		Goal:      make([]Atom, 0, len(yp.Goal)),
		Externals: make([]*ExternalDecl, 0, len(yp.Externals)),
	}

	for _, entry := range yp.Init {
		atom, err := ParseAtom(entry.Atom)
		if err != nil {
			return nil, fmt.Errorf("invalid init atom: %w", err)
		}
		p.Init = append(p.Init, InitEntry{Atom: atom, Value: entry.Value})
	}

	for _, text := range yp.Goal {
		atom, err := ParseAtom(text)
		if err != nil {
			return nil, fmt.Errorf("invalid goal atom: %w", err)
		}
		p.Goal = append(p.Goal, atom)
	}

	for i := range yp.Externals {
		decl, err := convertYAMLExternal(&yp.Externals[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert external %q: %w", yp.Externals[i].Name, err)
		}
		p.Externals = append(p.Externals, decl)
	}

	return p, nil
}

// convertYAMLAction converts a YAMLAction to an Action with atom parsing and
// the unit-cost default.
func convertYAMLAction(ya *YAMLAction) (*Action, error) {
	action := &Action{
		Name:       ya.Name,
		Parameters: make([]Variable, 0, len(ya.Parameters)),
	}
	for _, p := range ya.Parameters {
		action.Parameters = append(action.Parameters, Variable(p))
	}

	var err error
	if action.Preconditions, err = parseAtomList(ya.Preconditions); err != nil {
		return nil, fmt.Errorf("invalid precondition: %w", err)
	}
	if action.AddEffects, err = parseAtomList(ya.Effects.Add); err != nil {
		return nil, fmt.Errorf("invalid add effect: %w", err)
	}
	if action.DeleteEffects, err = parseAtomList(ya.Effects.Delete); err != nil {
		return nil, fmt.Errorf("invalid delete effect: %w", err)
	}

	if ya.Cost == nil {
		action.Cost = UnitCost()
		return action, nil
	}
	action.Cost = CostSpec{Constant: ya.Cost.Constant}
	if ya.Cost.Function != "" {
		fn, err := ParseAtom(ya.Cost.Function)
		if err != nil {
			return nil, fmt.Errorf("invalid cost function: %w", err)
		}
		action.Cost.Function = &fn
	}
	return action, nil
}

// convertYAMLExternal converts a YAMLExternal to an ExternalDecl.
func convertYAMLExternal(ye *YAMLExternal) (*ExternalDecl, error) {
	decl := &ExternalDecl{
		Name:    ye.Name,
		Kind:    ExternalKind(ye.Kind),
		Inputs:  make([]Variable, 0, len(ye.Inputs)),
		Outputs: make([]Variable, 0, len(ye.Outputs)),
	}
	for _, v := range ye.Inputs {
		decl.Inputs = append(decl.Inputs, Variable(v))
	}
	for _, v := range ye.Outputs {
		decl.Outputs = append(decl.Outputs, Variable(v))
	}

	var err error
	if decl.Domain, err = parseAtomList(ye.Domain); err != nil {
		return nil, fmt.Errorf("invalid domain atom: %w", err)
	}
	if decl.Certified, err = parseAtomList(ye.Certified); err != nil {
		return nil, fmt.Errorf("invalid certified atom: %w", err)
	}
	if decl.Observed, err = parseAtomList(ye.Observed); err != nil {
		return nil, fmt.Errorf("invalid observed atom: %w", err)
	}
	return decl, nil
}

// parseAtomList parses a list of atom text forms.
func parseAtomList(texts []string) ([]Atom, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	atoms := make([]Atom, 0, len(texts))
	for _, text := range texts {
		atom, err := ParseAtom(text)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}
