// Package stream implements the generator side of the planner: the contract
// external generators satisfy, the registry that binds them to problem
// declarations by name, and the instances a grounding engine advances.
package stream

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zero-day-ai/streamplan/problem"
)

// Result is one output tuple yielded by a generator advance. Stream results
// bind the declaration's output variables in order; function results carry a
// numeric value and no outputs.
type Result struct {
	// Outputs are the objects bound to the declaration's output variables,
	// in declaration order.
	Outputs []problem.Object

	// Value is the numeric value for function externals, nil otherwise.
	Value *float64
}

// Values builds a stream result binding the given output objects.
func Values(outputs ...problem.Object) Result {
	return Result{Outputs: outputs}
}

// ValueOf builds a function result carrying a numeric value.
func ValueOf(v float64) Result {
	return Result{Value: &v}
}

// Generator yields batches of results for one concrete input binding.
// Implementations are advanced one batch at a time and report exhaustion
// through the done flag; a final batch and exhaustion may arrive together.
// Generators are never advanced again after reporting done or returning an
// error.
type Generator interface {
	// Next returns the next batch of results. done reports that the
	// generator can never yield further results. A non-nil error aborts the
	// surrounding solve.
	Next(ctx context.Context) (results []Result, done bool, err error)
}

// GeneratorFunc constructs a Generator for one concrete input tuple. A
// GeneratorFunc is registered per external name; the grounding engine calls
// it once per discovered instance. Returning nil is treated as an
// immediately exhausted generator.
type GeneratorFunc func(inputs []problem.Object) Generator

// batchGenerator adapts an eagerly computed result list to the Generator
// contract: one batch, then exhausted.
type batchGenerator struct {
	fn     func(ctx context.Context) ([]Result, error)
	called bool
}

func (g *batchGenerator) Next(ctx context.Context) ([]Result, bool, error) {
	if g.called {
		return nil, true, nil
	}
	g.called = true
	results, err := g.fn(ctx)
	if err != nil {
		return nil, false, err
	}
	return results, true, nil
}

// FromList adapts a function computing all results at once into a
// GeneratorFunc. The produced generators yield a single batch and are then
// exhausted.
func FromList(fn func(ctx context.Context, inputs []problem.Object) ([]Result, error)) GeneratorFunc {
	return func(inputs []problem.Object) Generator {
		return &batchGenerator{fn: func(ctx context.Context) ([]Result, error) {
			return fn(ctx, inputs)
		}}
	}
}

// FromFunction adapts a numeric function into a GeneratorFunc for function
// externals: one value, then exhausted.
func FromFunction(fn func(ctx context.Context, inputs []problem.Object) (float64, error)) GeneratorFunc {
	return func(inputs []problem.Object) Generator {
		return &batchGenerator{fn: func(ctx context.Context) ([]Result, error) {
			v, err := fn(ctx, inputs)
			if err != nil {
				return nil, err
			}
			return []Result{ValueOf(v)}, nil
		}}
	}
}

// FromTest adapts a boolean test into a GeneratorFunc for output-free
// streams: a passing test certifies the declaration's certified atoms once,
// a failing test certifies nothing.
func FromTest(fn func(ctx context.Context, inputs []problem.Object) (bool, error)) GeneratorFunc {
	return func(inputs []problem.Object) Generator {
		return &batchGenerator{fn: func(ctx context.Context) ([]Result, error) {
			ok, err := fn(ctx, inputs)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			return []Result{{}}, nil
		}}
	}
}

// NewObject mints a fresh object symbol with the given prefix, for
// generators that invent objects (sampled configurations, grasps,
// trajectories) rather than reusing their inputs.
func NewObject(prefix string) problem.Object {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	if prefix == "" {
		return problem.Object("obj-" + suffix)
	}
	return problem.Object(fmt.Sprintf("%s-%s", prefix, suffix))
}

// Registry maps external names to the GeneratorFunc that serves them. A
// problem's declarations are bound against a registry when the problem is
// handed to a solver.
type Registry struct {
	generators map[string]GeneratorFunc
}

// NewRegistry creates an empty generator registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]GeneratorFunc)}
}

// Register adds a generator under an external name. Registering a duplicate
// name returns an error.
func (r *Registry) Register(name string, fn GeneratorFunc) error {
	if name == "" {
		return fmt.Errorf("generator name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("generator %q cannot be nil", name)
	}
	if _, ok := r.generators[name]; ok {
		return fmt.Errorf("generator %q is already registered", name)
	}
	r.generators[name] = fn
	return nil
}

// Lookup returns the generator registered under name.
func (r *Registry) Lookup(name string) (GeneratorFunc, bool) {
	fn, ok := r.generators[name]
	return fn, ok
}

// Names returns the registered names in arbitrary order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}
