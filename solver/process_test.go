package solver

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/ground"
	"github.com/zero-day-ai/streamplan/plan"
	"github.com/zero-day-ai/streamplan/problem"
	"github.com/zero-day-ai/streamplan/search"
	"github.com/zero-day-ai/streamplan/stream"
)

func testSolver() *Solver {
	return &Solver{
		searcher: search.NewForwardSearcher(),
		logger:   slog.Default(),
		maxCost:  plan.Infinity,
		layers:   DefaultLayers,
	}
}

func bindExternals(t *testing.T, registry *stream.Registry, decls ...*problem.ExternalDecl) []*stream.External {
	t.Helper()
	for _, d := range decls {
		require.NoError(t, d.Validate())
	}
	externals, err := stream.Bind(decls, registry)
	require.NoError(t, err)
	return externals
}

// stuckGenerator yields nothing and never exhausts.
type stuckGenerator struct {
	calls int
}

func (g *stuckGenerator) Next(ctx context.Context) ([]stream.Result, bool, error) {
	g.calls++
	return nil, false, nil
}

func TestProcessNext_ExhaustedInstanceDiscarded(t *testing.T) {
	registry := stream.NewRegistry()
	require.NoError(t, registry.Register("emit", stream.FromList(
		func(ctx context.Context, inputs []problem.Object) ([]stream.Result, error) {
			return []stream.Result{stream.Values("v1")}, nil
		})))

	externals := bindExternals(t, registry, &problem.ExternalDecl{
		Name:      "emit",
		Kind:      problem.KindStream,
		Outputs:   []problem.Variable{"?x"},
		Certified: []problem.Atom{problem.NewAtom("made", "?x")},
	})

	set := eval.NewSet()
	inst := ground.NewInstantiator(set, externals)
	s := testSolver()

	// The seeded instance exhausts after its single batch and is dropped.
	require.Equal(t, 1, inst.Queue().Len())
	require.NoError(t, s.processNext(context.Background(), set, inst))
	assert.Equal(t, 0, inst.Queue().Len())
	assert.True(t, set.Has(problem.NewAtom("made", "v1")))
	sizeAfter := set.Len()

	// A stale exhausted entry is discarded without touching the set, and is
	// never re-queued, no matter how often it is advanced.
	stale := externals[0].NewInstance(nil)
	_, err := stale.Next(context.Background())
	require.NoError(t, err)
	require.True(t, stale.Enumerated())

	for i := 0; i < 2; i++ {
		inst.Queue().Append(stale)
		require.Equal(t, 1, inst.Queue().Len())
		require.NoError(t, s.processNext(context.Background(), set, inst))
		assert.Equal(t, 0, inst.Queue().Len())
		assert.Equal(t, sizeAfter, set.Len())
	}
}

func TestFunctionSweep_ResolvesFunctionsPreservesStreams(t *testing.T) {
	registry := stream.NewRegistry()
	for _, name := range []string{"s1", "s2"} {
		require.NoError(t, registry.Register(name, func(inputs []problem.Object) stream.Generator {
			return &stuckGenerator{}
		}))
	}
	require.NoError(t, registry.Register("f1", stream.FromFunction(
		func(ctx context.Context, inputs []problem.Object) (float64, error) { return 3, nil })))
	require.NoError(t, registry.Register("f2", stream.FromFunction(
		func(ctx context.Context, inputs []problem.Object) (float64, error) { return 4, nil })))

	externals := bindExternals(t, registry,
		&problem.ExternalDecl{Name: "s1", Kind: problem.KindStream},
		&problem.ExternalDecl{Name: "f1", Kind: problem.KindFunction},
		&problem.ExternalDecl{Name: "s2", Kind: problem.KindStream},
		&problem.ExternalDecl{Name: "f2", Kind: problem.KindFunction},
	)

	set := eval.NewSet()
	inst := ground.NewInstantiator(set, externals)
	require.Equal(t, 4, inst.Queue().Len())

	s := testSolver()
	require.NoError(t, s.functionSweep(context.Background(), set, inst))

	v, ok := set.Value(problem.NewAtom("f1"))
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
	v, ok = set.Value(problem.NewAtom("f2"))
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	// Stream instances survive in their original relative order; no
	// function instance is left behind.
	remaining := inst.Queue().Instances()
	require.Len(t, remaining, 2)
	assert.Equal(t, "s1()", remaining[0].Signature())
	assert.Equal(t, "s2()", remaining[1].Signature())
	for _, r := range remaining {
		assert.Equal(t, problem.KindStream, r.Kind())
	}
}

func TestLayeredSweep_DefersMidRoundAppends(t *testing.T) {
	// emitA certifies seed(x1); emitB is grounded by seed(x1) mid-round and
	// certifies leaf(x1) only once a later round reaches it.
	buildRun := func(t *testing.T) (*Solver, *eval.Set, *ground.Instantiator, *Store) {
		registry := stream.NewRegistry()
		require.NoError(t, registry.Register("emitA", stream.FromList(
			func(ctx context.Context, inputs []problem.Object) ([]stream.Result, error) {
				return []stream.Result{stream.Values("x1")}, nil
			})))
		require.NoError(t, registry.Register("emitB", stream.FromTest(
			func(ctx context.Context, inputs []problem.Object) (bool, error) {
				return true, nil
			})))

		externals := bindExternals(t, registry,
			&problem.ExternalDecl{
				Name:      "emitA",
				Kind:      problem.KindStream,
				Outputs:   []problem.Variable{"?x"},
				Certified: []problem.Atom{problem.NewAtom("seed", "?x")},
			},
			&problem.ExternalDecl{
				Name:      "emitB",
				Kind:      problem.KindStream,
				Inputs:    []problem.Variable{"?s"},
				Domain:    []problem.Atom{problem.NewAtom("seed", "?s")},
				Certified: []problem.Atom{problem.NewAtom("leaf", "?s")},
			},
		)

		set := eval.NewSet()
		return testSolver(), set, ground.NewInstantiator(set, externals), NewStore(0, plan.Infinity, false)
	}

	t.Run("one layer leaves the mid-round instance pending", func(t *testing.T) {
		s, set, inst, store := buildRun(t)
		require.NoError(t, s.layeredSweep(context.Background(), set, inst, store, 1))

		assert.True(t, set.Has(problem.NewAtom("seed", "x1")))
		assert.False(t, set.Has(problem.NewAtom("leaf", "x1")))
		require.Equal(t, 1, inst.Queue().Len())
		assert.Equal(t, "emitB(x1)", inst.Queue().Instances()[0].Signature())
	})

	t.Run("two layers reach the dependent instance", func(t *testing.T) {
		s, set, inst, store := buildRun(t)
		require.NoError(t, s.layeredSweep(context.Background(), set, inst, store, 2))

		assert.True(t, set.Has(problem.NewAtom("seed", "x1")))
		assert.True(t, set.Has(problem.NewAtom("leaf", "x1")))
		assert.Equal(t, 0, inst.Queue().Len())
	})
}

func TestLayeredSweep_AbortsWhenTerminated(t *testing.T) {
	gen := &stuckGenerator{}
	registry := stream.NewRegistry()
	require.NoError(t, registry.Register("s1", func(inputs []problem.Object) stream.Generator {
		return gen
	}))

	externals := bindExternals(t, registry,
		&problem.ExternalDecl{Name: "s1", Kind: problem.KindStream})

	set := eval.NewSet()
	inst := ground.NewInstantiator(set, externals)

	store := NewStore(0, plan.Infinity, false)
	store.AddPlan(stepPlan("done"), 1)
	require.True(t, store.Terminated())

	s := testSolver()
	require.NoError(t, s.layeredSweep(context.Background(), set, inst, store, 3))

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 1, inst.Queue().Len())
}

func TestBudgetStop(t *testing.T) {
	assert.True(t, budgetStop(context.Canceled))
	assert.True(t, budgetStop(context.DeadlineExceeded))
	assert.True(t, budgetStop(streamplan.WrapError(
		streamplan.STREAM_GENERATOR_FAILED, "sample failed", context.Canceled)))
	assert.False(t, budgetStop(errors.New("boom")))
	assert.False(t, budgetStop(nil))
}
