// Package match implements conjunctive pattern matching of lifted atoms
// against an evaluation set. It backs both the grounding engine's incremental
// instance discovery and the search's action grounding.
package match

import (
	"sort"
	"strings"

	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/problem"
)

// Unify matches a lifted pattern against a ground atom under an existing
// binding. It returns the extended binding and true on success; the input
// binding is never modified.
func Unify(pattern, ground problem.Atom, base problem.Binding) (problem.Binding, bool) {
	if pattern.Predicate != ground.Predicate || len(pattern.Args) != len(ground.Args) {
		return nil, false
	}

	binding := base
	extended := false
	for i, t := range pattern.Args {
		g := ground.Args[i]
		if !t.IsVariable() {
			if t != g {
				return nil, false
			}
			continue
		}
		v := t.Variable()
		if bound, ok := binding[v]; ok {
			if problem.Term(bound) != g {
				return nil, false
			}
			continue
		}
		if !extended {
			// Copy-on-write so failed branches leave the caller's binding intact.
			binding = binding.Extend(v, g.Object())
			extended = true
			continue
		}
		binding[v] = g.Object()
	}
	if !extended && binding == nil {
		binding = problem.Binding{}
	}
	return binding, true
}

// Conjunction enumerates every binding under which all patterns are
// certified in the set, extending the base binding. Bindings are produced in
// a deterministic order derived from the set's insertion order.
func Conjunction(set *eval.Set, patterns []problem.Atom, base problem.Binding) []problem.Binding {
	results := []problem.Binding{}
	matchRemaining(set, patterns, base, &results)
	return results
}

// ConjunctionPinned enumerates bindings under which all patterns hold and at
// least one pattern is matched by the pinned ground atom. It is the
// incremental form used when a new evaluation arrives: only bindings the new
// atom participates in are discovered. Bindings reached through multiple pin
// positions are deduplicated.
func ConjunctionPinned(set *eval.Set, patterns []problem.Atom, pinned problem.Atom) []problem.Binding {
	var results []problem.Binding
	seen := make(map[string]bool)

	for i, pattern := range patterns {
		binding, ok := Unify(pattern, pinned, nil)
		if !ok {
			continue
		}
		rest := make([]problem.Atom, 0, len(patterns)-1)
		rest = append(rest, patterns[:i]...)
		rest = append(rest, patterns[i+1:]...)

		for _, full := range Conjunction(set, rest, binding) {
			key := bindingKey(full)
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, full)
		}
	}
	return results
}

// matchRemaining extends base across the patterns left to satisfy, appending
// every complete binding to results.
func matchRemaining(set *eval.Set, patterns []problem.Atom, base problem.Binding, results *[]problem.Binding) {
	if len(patterns) == 0 {
		if base == nil {
			base = problem.Binding{}
		}
		*results = append(*results, base)
		return
	}

	pattern := patterns[0]
	for _, e := range set.ByPredicate(pattern.Predicate) {
		binding, ok := Unify(pattern, e.Atom, base)
		if !ok {
			continue
		}
		matchRemaining(set, patterns[1:], binding, results)
	}
}

// bindingKey returns a canonical text form of a binding for deduplication.
func bindingKey(b problem.Binding) string {
	if len(b) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(b))
	for v, o := range b {
		pairs = append(pairs, string(v)+"="+string(o))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
