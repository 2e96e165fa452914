package ground

import (
	"log/slog"

	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/internal/match"
	"github.com/zero-day-ai/streamplan/problem"
	"github.com/zero-day-ai/streamplan/stream"
)

// InstantiatorOption is a functional option for configuring an Instantiator.
type InstantiatorOption func(*Instantiator)

// WithLogger sets a custom logger for grounding events.
func WithLogger(logger *slog.Logger) InstantiatorOption {
	return func(in *Instantiator) {
		in.logger = logger
	}
}

// Instantiator is the grounding engine. It watches the evaluation set grow
// and discovers, incrementally, every stream instance whose domain atoms
// have become fully certified, appending each newly discovered instance to
// its queue exactly once.
//
// It reads the evaluation set but never writes it: certifying results is the
// caller's job, and AddAtom is called once per evaluation that turned out to
// be genuinely new.
type Instantiator struct {
	set       *eval.Set
	externals []*stream.External
	queue     *Queue
	seen      map[string]bool
	logger    *slog.Logger
}

// NewInstantiator creates a grounding engine over an evaluation set and the
// bound externals. Construction seeds the queue: domain-free declarations
// contribute one instance each, and every evaluation already in the set is
// replayed through the same incremental discovery used at runtime. The
// queue's order is therefore a pure function of the set's insertion order.
//
// It:
//  1. Registers one instance per external whose domain is empty.
//  2. Replays each existing evaluation through AddAtom, in insertion order.
func NewInstantiator(set *eval.Set, externals []*stream.External, opts ...InstantiatorOption) *Instantiator {
	in := &Instantiator{
		set:       set,
		externals: externals,
		queue:     NewQueue(),
		seen:      make(map[string]bool),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}

	for _, x := range in.externals {
		if len(x.Decl().Domain) == 0 {
			in.push(x.NewInstance(nil))
		}
	}
	for _, e := range set.All() {
		in.AddAtom(e)
	}
	return in
}

// Queue returns the instance queue the engine appends to. The queue is
// shared with the processing strategies, which pop, advance, and re-append
// instances while the engine keeps discovering new ones.
func (in *Instantiator) Queue() *Queue {
	return in.queue
}

// Seen returns how many distinct instances have been discovered over the
// whole run, including instances no longer queued.
func (in *Instantiator) Seen() int {
	return len(in.seen)
}

// AddAtom incorporates one new evaluation into the grounding state and
// returns the instances it newly enabled, in discovery order. The evaluation
// must already be in the set. Instances whose input signature was discovered
// before are suppressed, so re-deriving a grounding through a different
// domain atom cannot enqueue duplicates.
func (in *Instantiator) AddAtom(e eval.Evaluation) []*stream.Instance {
	var grounded []*stream.Instance
	for _, x := range in.externals {
		decl := x.Decl()
		if len(decl.Domain) == 0 {
			continue
		}
		for _, binding := range match.ConjunctionPinned(in.set, decl.Domain, e.Atom) {
			inputs := make([]problem.Object, len(decl.Inputs))
			for i, v := range decl.Inputs {
				inputs[i] = binding[v]
			}
			if inst := in.push(x.NewInstance(inputs)); inst != nil {
				grounded = append(grounded, inst)
			}
		}
	}
	return grounded
}

// push appends an instance unless its signature was discovered before.
// Returns the instance when it was genuinely new.
func (in *Instantiator) push(inst *stream.Instance) *stream.Instance {
	sig := inst.Signature()
	if in.seen[sig] {
		return nil
	}
	in.seen[sig] = true
	in.queue.Append(inst)
	in.logger.Debug("grounded stream instance",
		"instance", sig,
		"kind", inst.Kind().String(),
		"queued", in.queue.Len())
	return inst
}
