package stream

import (
	"context"
	"fmt"
	"strings"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/problem"
)

// Instance is one grounding of an external over concrete input objects. It
// owns the enumeration cursor for that input tuple: how far the underlying
// generator has been advanced and whether it can ever yield again.
//
// The enumerated flag is monotone. Once set it never clears, and advancing an
// enumerated instance is a no-op yielding no evaluations.
//
// An Instance is exclusively owned by one solving run and is not safe for
// concurrent use.
type Instance struct {
	external   *External
	inputs     []problem.Object
	gen        Generator
	started    bool
	enumerated bool
	calls      int
}

// External returns the bound external this instance grounds.
func (i *Instance) External() *External {
	return i.external
}

// Inputs returns the concrete input objects, aligned with the declaration's
// input variables.
func (i *Instance) Inputs() []problem.Object {
	return i.inputs
}

// Kind returns the declaration's kind. Queue strategies branch on this
// discriminator rather than on the generator's dynamic type.
func (i *Instance) Kind() problem.ExternalKind {
	return i.external.Kind()
}

// Enumerated reports whether the instance can ever yield further results.
func (i *Instance) Enumerated() bool {
	return i.enumerated
}

// Calls returns how many times the instance has been advanced.
func (i *Instance) Calls() int {
	return i.calls
}

// Signature returns the instance's canonical identity: the external name
// applied to the input objects, e.g. "sample-path(q0)". The grounding engine
// keys duplicate suppression on it.
func (i *Instance) Signature() string {
	if len(i.inputs) == 0 {
		return i.external.Name() + "()"
	}
	parts := make([]string, len(i.inputs))
	for j, o := range i.inputs {
		parts[j] = string(o)
	}
	return fmt.Sprintf("%s(%s)", i.external.Name(), strings.Join(parts, ","))
}

// String returns the instance signature.
func (i *Instance) String() string {
	return i.Signature()
}

// Next advances the generator by one batch and converts the yielded results
// into ground evaluations via the declaration's certified patterns. An
// enumerated instance yields nothing. Function instances are enumerated
// unconditionally after their single advance.
//
// Generator failures and malformed results are returned as coded errors
// carrying the instance signature; the instance's cursor state is unchanged
// by a failed advance.
func (i *Instance) Next(ctx context.Context) ([]eval.Evaluation, error) {
	if i.enumerated {
		return nil, nil
	}

	if !i.started {
		i.gen = i.external.gen(i.inputs)
		i.started = true
	}
	if i.gen == nil {
		i.enumerated = true
		return nil, nil
	}

	results, done, err := i.gen.Next(ctx)
	if err != nil {
		return nil, streamplan.WrapError(streamplan.STREAM_GENERATOR_FAILED,
			fmt.Sprintf("stream %s failed", i.Signature()), err)
	}

	evals, err := i.convert(results)
	if err != nil {
		return nil, err
	}

	i.calls++
	if done || i.external.Kind() == problem.KindFunction {
		i.enumerated = true
	}
	return evals, nil
}

// convert turns a result batch into ground evaluations.
func (i *Instance) convert(results []Result) ([]eval.Evaluation, error) {
	decl := i.external.Decl()

	if decl.Kind == problem.KindFunction {
		if len(results) > 1 {
			return nil, streamplan.NewError(streamplan.STREAM_RESULT_INVALID,
				fmt.Sprintf("function %s yielded %d results; functions yield at most one", i.Signature(), len(results)))
		}
		if len(results) == 0 {
			return nil, nil
		}
		r := results[0]
		if r.Value == nil {
			return nil, streamplan.NewError(streamplan.STREAM_RESULT_INVALID,
				fmt.Sprintf("function %s yielded a result without a value", i.Signature()))
		}
		head := decl.Head().Bind(i.inputBinding())
		return []eval.Evaluation{eval.NewValueEvaluation(head, *r.Value)}, nil
	}

	var evals []eval.Evaluation
	for _, r := range results {
		if len(r.Outputs) != len(decl.Outputs) {
			return nil, streamplan.NewError(streamplan.STREAM_RESULT_INVALID,
				fmt.Sprintf("stream %s yielded %d outputs, declaration has %d",
					i.Signature(), len(r.Outputs), len(decl.Outputs)))
		}
		binding := i.inputBinding()
		for j, v := range decl.Outputs {
			o := r.Outputs[j]
			if o == "" || strings.HasPrefix(string(o), "?") {
				return nil, streamplan.NewError(streamplan.STREAM_RESULT_INVALID,
					fmt.Sprintf("stream %s yielded invalid object %q for output %s", i.Signature(), o, v))
			}
			binding[v] = o
		}
		for _, pattern := range decl.Certified {
			ground := pattern.Bind(binding)
			if !ground.IsGround() {
				return nil, streamplan.NewError(streamplan.STREAM_RESULT_INVALID,
					fmt.Sprintf("stream %s certified atom %s is not ground", i.Signature(), ground))
			}
			evals = append(evals, eval.NewEvaluation(ground))
		}
	}
	return evals, nil
}

// inputBinding maps the declaration's input variables to this instance's
// objects. A fresh map per call: convert extends it with outputs.
func (i *Instance) inputBinding() problem.Binding {
	decl := i.external.Decl()
	binding := make(problem.Binding, len(decl.Inputs)+len(decl.Outputs))
	for j, v := range decl.Inputs {
		binding[v] = i.inputs[j]
	}
	return binding
}
