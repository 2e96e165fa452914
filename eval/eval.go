// Package eval implements the evaluation set: the append-only knowledge base
// of certified facts and function values a solving run grows over time.
package eval

import (
	"fmt"

	"github.com/zero-day-ai/streamplan/problem"
)

// Evaluation is one certified fact: a ground atom, optionally carrying the
// numeric value of a function evaluation. Two evaluations are the same entry
// exactly when their atom signatures match.
type Evaluation struct {
	// Atom is the certified ground atom.
	Atom problem.Atom

	// Value is the numeric value for function evaluations, nil for plain
	// relational facts.
	Value *float64
}

// NewEvaluation builds a relational evaluation from a ground atom.
func NewEvaluation(atom problem.Atom) Evaluation {
	return Evaluation{Atom: atom}
}

// NewValueEvaluation builds a function evaluation carrying a numeric value.
func NewValueEvaluation(atom problem.Atom, value float64) Evaluation {
	return Evaluation{Atom: atom, Value: &value}
}

// Signature returns the evaluation's identity: its atom's canonical text
// form.
func (e Evaluation) Signature() string {
	return e.Atom.Signature()
}

// HasValue reports whether the evaluation carries a function value.
func (e Evaluation) HasValue() bool {
	return e.Value != nil
}

// String renders the evaluation for logs: "at(q0)" or "dist(q0,q1)=3.5".
func (e Evaluation) String() string {
	if e.Value != nil {
		return fmt.Sprintf("%s=%g", e.Atom.Signature(), *e.Value)
	}
	return e.Atom.Signature()
}
