package eval

import (
	"github.com/zero-day-ai/streamplan/problem"
)

// Set is the growing evaluation set of a solving run. Membership is keyed by
// atom signature, insertion is idempotent, and entries are never removed:
// action delete effects are a search-state notion and do not reach this
// layer.
//
// Iteration order (All, ByPredicate) is insertion order, which keeps
// grounding and search deterministic for deterministic inputs.
//
// A Set is exclusively owned by one solving run and is not safe for
// concurrent use.
type Set struct {
	entries map[string]Evaluation
	order   []string
	byPred  map[string][]string
}

// NewSet creates an empty evaluation set.
func NewSet() *Set {
	return &Set{
		entries: make(map[string]Evaluation),
		byPred:  make(map[string][]string),
	}
}

// NewSetFromInit creates an evaluation set holding a problem's initial state.
// Duplicate init entries collapse to their first occurrence.
func NewSetFromInit(p *problem.Problem) *Set {
	s := NewSet()
	for _, entry := range p.Init {
		if entry.Value != nil {
			s.Add(NewValueEvaluation(entry.Atom, *entry.Value))
			continue
		}
		s.Add(NewEvaluation(entry.Atom))
	}
	return s
}

// Len returns the number of evaluations in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Has reports whether the ground atom is certified.
func (s *Set) Has(atom problem.Atom) bool {
	_, ok := s.entries[atom.Signature()]
	return ok
}

// Get returns the evaluation for the given ground atom.
func (s *Set) Get(atom problem.Atom) (Evaluation, bool) {
	e, ok := s.entries[atom.Signature()]
	return e, ok
}

// Value returns the function value certified for the given ground atom.
// The second result is false when the atom is absent or carries no value.
func (s *Set) Value(atom problem.Atom) (float64, bool) {
	e, ok := s.entries[atom.Signature()]
	if !ok || e.Value == nil {
		return 0, false
	}
	return *e.Value, true
}

// Add inserts an evaluation and reports whether it was genuinely new. Adding
// an existing signature is a no-op that returns false; the first certified
// value for a signature wins. The atom must be ground: callers validate
// generator output before it reaches the set.
func (s *Set) Add(e Evaluation) bool {
	sig := e.Signature()
	if _, ok := s.entries[sig]; ok {
		return false
	}
	s.entries[sig] = e
	s.order = append(s.order, sig)
	s.byPred[e.Atom.Predicate] = append(s.byPred[e.Atom.Predicate], sig)
	return true
}

// Certify inserts a batch of evaluations and returns only the genuinely new
// ones, in batch order. Certifying already-present facts yields an empty
// result and leaves the set unchanged.
func (s *Set) Certify(batch []Evaluation) []Evaluation {
	var added []Evaluation
	for _, e := range batch {
		if s.Add(e) {
			added = append(added, e)
		}
	}
	return added
}

// All returns a snapshot of every evaluation in insertion order. The slice
// is freshly allocated; callers may keep it.
func (s *Set) All() []Evaluation {
	out := make([]Evaluation, 0, len(s.order))
	for _, sig := range s.order {
		out = append(out, s.entries[sig])
	}
	return out
}

// ByPredicate returns the evaluations whose atoms use the given predicate,
// in insertion order.
func (s *Set) ByPredicate(predicate string) []Evaluation {
	sigs := s.byPred[predicate]
	if len(sigs) == 0 {
		return nil
	}
	out := make([]Evaluation, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, s.entries[sig])
	}
	return out
}
