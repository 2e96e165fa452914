package problem

import (
	"fmt"
	"strings"
)

// Object is an opaque constant symbol: a planning object named in the initial
// state or minted by a stream at runtime.
type Object string

// String returns the object's symbol name.
func (o Object) String() string {
	return string(o)
}

// Variable is a lifted placeholder in an atom or action schema. Variables are
// written with a leading question mark, e.g. "?q".
type Variable string

// String returns the variable's name including the leading question mark.
func (v Variable) String() string {
	return string(v)
}

// Term is a single argument slot of an atom: either a constant object symbol
// or a "?"-prefixed variable. The textual convention is the discriminator, so
// terms stay cheap to compare and to key on.
type Term string

// IsVariable reports whether the term is a lifted variable.
func (t Term) IsVariable() bool {
	return strings.HasPrefix(string(t), "?")
}

// Variable returns the term as a Variable. Only meaningful when IsVariable
// is true.
func (t Term) Variable() Variable {
	return Variable(t)
}

// Object returns the term as an Object. Only meaningful when IsVariable is
// false.
func (t Term) Object() Object {
	return Object(t)
}

// String returns the term's text form.
func (t Term) String() string {
	return string(t)
}

// Binding maps lifted variables to the objects they stand for during
// grounding and substitution.
type Binding map[Variable]Object

// Extend returns a copy of the binding with one additional variable bound.
// The receiver is not modified.
func (b Binding) Extend(v Variable, o Object) Binding {
	next := make(Binding, len(b)+1)
	for k, val := range b {
		next[k] = val
	}
	next[v] = o
	return next
}

// Atom is a predicate applied to argument terms. An atom with no variable
// arguments is ground; ground atoms are the facts certified into an
// evaluation set.
type Atom struct {
	// Predicate is the relation name, e.g. "at" or "motion".
	Predicate string

	// Args are the argument terms in declaration order.
	Args []Term
}

// NewAtom builds an atom from a predicate name and argument terms.
func NewAtom(predicate string, args ...Term) Atom {
	return Atom{Predicate: predicate, Args: args}
}

// IsGround reports whether the atom contains no variables.
func (a Atom) IsGround() bool {
	for _, t := range a.Args {
		if t.IsVariable() {
			return false
		}
	}
	return true
}

// Variables returns the distinct variables of the atom in first-occurrence
// order.
func (a Atom) Variables() []Variable {
	var vars []Variable
	seen := make(map[Variable]bool)
	for _, t := range a.Args {
		if !t.IsVariable() {
			continue
		}
		v := t.Variable()
		if !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	return vars
}

// Bind substitutes bound variables with their objects. Variables absent from
// the binding are left in place, so the result may still be lifted.
func (a Atom) Bind(b Binding) Atom {
	if len(b) == 0 || a.IsGround() {
		return a
	}
	args := make([]Term, len(a.Args))
	for i, t := range a.Args {
		if t.IsVariable() {
			if o, ok := b[t.Variable()]; ok {
				args[i] = Term(o)
				continue
			}
		}
		args[i] = t
	}
	return Atom{Predicate: a.Predicate, Args: args}
}

// Signature returns the canonical text form of the atom, e.g. "at(?q)" or
// "motion(q1,q2)". For ground atoms the signature is the unique identity used
// for evaluation-set membership and duplicate suppression.
func (a Atom) Signature() string {
	if len(a.Args) == 0 {
		return a.Predicate + "()"
	}
	var sb strings.Builder
	sb.WriteString(a.Predicate)
	sb.WriteByte('(')
	for i, t := range a.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(t))
	}
	sb.WriteByte(')')
	return sb.String()
}

// String returns the canonical text form of the atom.
func (a Atom) String() string {
	return a.Signature()
}

// ParseAtom parses the canonical text form "pred(arg1,arg2)" into an Atom.
// A bare predicate name ("handempty") parses as a zero-arity atom. Arguments
// starting with "?" parse as variables, everything else as objects.
func ParseAtom(s string) (Atom, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Atom{}, fmt.Errorf("atom text is empty")
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if err := validateSymbol(s); err != nil {
			return Atom{}, fmt.Errorf("invalid predicate %q: %w", s, err)
		}
		return Atom{Predicate: s}, nil
	}
	if !strings.HasSuffix(s, ")") {
		return Atom{}, fmt.Errorf("atom %q is missing a closing parenthesis", s)
	}

	pred := strings.TrimSpace(s[:open])
	if err := validateSymbol(pred); err != nil {
		return Atom{}, fmt.Errorf("invalid predicate %q: %w", pred, err)
	}

	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return Atom{Predicate: pred}, nil
	}

	parts := strings.Split(inner, ",")
	args := make([]Term, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Atom{}, fmt.Errorf("atom %q has an empty argument", s)
		}
		name := strings.TrimPrefix(p, "?")
		if err := validateSymbol(name); err != nil {
			return Atom{}, fmt.Errorf("invalid argument %q in atom %q: %w", p, s, err)
		}
		args = append(args, Term(p))
	}
	return Atom{Predicate: pred, Args: args}, nil
}

// validateSymbol enforces the symbol alphabet shared by predicates, objects,
// and variable names: letters, digits, '-', '_', '.', starting with a letter
// or digit.
func validateSymbol(s string) error {
	if s == "" {
		return fmt.Errorf("symbol is empty")
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
			if i == 0 {
				return fmt.Errorf("symbol must start with a letter or digit")
			}
		default:
			return fmt.Errorf("symbol contains invalid character %q", r)
		}
	}
	return nil
}
