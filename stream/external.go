package stream

import (
	"fmt"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/problem"
)

// External is a problem declaration bound to the generator that serves it.
// Externals are created by Bind when a solve starts and are shared by every
// instance grounded from them.
type External struct {
	decl *problem.ExternalDecl
	gen  GeneratorFunc
}

// Bind joins each declaration to its registered generator. Every declaration
// must have a generator; an unbound name is a fatal setup error reported with
// code EXTERNAL_UNBOUND.
func Bind(decls []*problem.ExternalDecl, registry *Registry) ([]*External, error) {
	externals := make([]*External, 0, len(decls))
	for _, decl := range decls {
		fn, ok := registry.Lookup(decl.Name)
		if !ok {
			return nil, streamplan.NewError(streamplan.EXTERNAL_UNBOUND,
				fmt.Sprintf("no generator registered for external %q", decl.Name))
		}
		externals = append(externals, &External{decl: decl, gen: fn})
	}
	return externals, nil
}

// Decl returns the bound declaration.
func (x *External) Decl() *problem.ExternalDecl {
	return x.decl
}

// Name returns the declaration's name.
func (x *External) Name() string {
	return x.decl.Name
}

// Kind returns the declaration's kind.
func (x *External) Kind() problem.ExternalKind {
	return x.decl.Kind
}

// NewInstance grounds the external over concrete input objects. inputs must
// align with the declaration's input variables; the grounding engine builds
// them from a matched binding, so the lengths always agree there.
func (x *External) NewInstance(inputs []problem.Object) *Instance {
	return &Instance{external: x, inputs: inputs}
}
