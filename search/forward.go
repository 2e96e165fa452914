package search

import (
	"container/heap"
	"context"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/internal/match"
	"github.com/zero-day-ai/streamplan/plan"
	"github.com/zero-day-ai/streamplan/problem"
)

// DefaultMaxExpansions bounds how many states a single search call may
// expand before giving up.
const DefaultMaxExpansions = 100000

// ForwardSearcher is the default Searcher: uniform-cost forward state-space
// search over ground actions. Actions are grounded against the reachable
// universe of facts (delete-relaxation fixpoint over the evaluation set), so
// preconditions introduced only by other actions' effects still ground.
//
// Ground actions whose declared cost function has no certified value are not
// applicable: their cost is undefined until the corresponding function
// instance has been resolved.
type ForwardSearcher struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	maxExpansions int
}

// ForwardOption is a functional option for configuring a ForwardSearcher.
type ForwardOption func(*ForwardSearcher)

// WithLogger configures the logger for the searcher.
func WithLogger(l *slog.Logger) ForwardOption {
	return func(s *ForwardSearcher) {
		s.logger = l
	}
}

// WithTracer configures the tracer for the searcher.
func WithTracer(t trace.Tracer) ForwardOption {
	return func(s *ForwardSearcher) {
		s.tracer = t
	}
}

// WithMaxExpansions configures the expansion bound for a single search call.
func WithMaxExpansions(n int) ForwardOption {
	return func(s *ForwardSearcher) {
		s.maxExpansions = n
	}
}

// NewForwardSearcher creates a ForwardSearcher with the given options.
// Default values:
//   - maxExpansions: DefaultMaxExpansions
//   - logger: slog.Default()
func NewForwardSearcher(opts ...ForwardOption) *ForwardSearcher {
	s := &ForwardSearcher{
		logger:        slog.Default(),
		maxExpansions: DefaultMaxExpansions,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// groundAction is one fully bound action: its plan step plus precondition,
// add, and delete signatures.
type groundAction struct {
	step plan.Step
	pre  []string
	add  []string
	del  []string
}

// Search runs uniform-cost search to the first goal state. It returns a nil
// plan and plan.Infinity when the goal is unreachable or the expansion bound
// is hit. Context cancellation is surfaced as the context's error.
func (s *ForwardSearcher) Search(ctx context.Context, set *eval.Set, domain *problem.Domain, goal []problem.Atom) (plan.Plan, float64, error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "search.run",
			trace.WithAttributes(
				attribute.Int("search.evaluations", set.Len()),
				attribute.Int("search.goal_atoms", len(goal)),
			))
		defer span.End()
	}

	actions := s.groundActions(set, domain)

	result, cost, expansions, err := s.dijkstra(ctx, set, actions, goal)

	if span != nil {
		span.SetAttributes(
			attribute.Int("search.ground_actions", len(actions)),
			attribute.Int("search.expansions", expansions),
			attribute.Bool("search.found", result.Found()),
		)
	}
	s.logger.Debug("search finished",
		"ground_actions", len(actions),
		"expansions", expansions,
		"found", result.Found(),
		"cost", cost)

	return result, cost, err
}

// groundActions computes every applicable ground action via a reachability
// fixpoint: each round grounds schemas against the universe of facts seen so
// far, and add effects of new ground actions grow the universe for the next
// round.
func (s *ForwardSearcher) groundActions(set *eval.Set, domain *problem.Domain) []*groundAction {
	universe := eval.NewSet()
	var objects []problem.Object
	seenObjects := make(map[problem.Object]bool)
	for _, e := range set.All() {
		for _, t := range e.Atom.Args {
			o := t.Object()
			if !seenObjects[o] {
				seenObjects[o] = true
				objects = append(objects, o)
			}
		}
		if !e.HasValue() {
			universe.Add(eval.NewEvaluation(e.Atom))
		}
	}

	built := make(map[string]bool)
	var actions []*groundAction

	for {
		grew := false
		for _, schema := range domain.Actions {
			for _, binding := range match.Conjunction(universe, schema.Preconditions, nil) {
				for _, full := range expandFreeParams(schema.Parameters, binding, objects) {
					ga, expanded := s.buildGroundAction(schema, full, set, universe, built)
					if ga != nil {
						actions = append(actions, ga)
					}
					if expanded {
						grew = true
					}
				}
			}
		}
		if !grew {
			break
		}
	}
	return actions
}

// buildGroundAction binds one schema under a complete binding. It returns
// the new ground action (nil when already built or when the cost function is
// unevaluated) and whether the universe gained a fact.
func (s *ForwardSearcher) buildGroundAction(schema *problem.Action, binding problem.Binding, set, universe *eval.Set, built map[string]bool) (*groundAction, bool) {
	args := make([]problem.Object, len(schema.Parameters))
	for i, p := range schema.Parameters {
		args[i] = binding[p]
	}
	key := plan.Step{Action: schema.Name, Args: args}.String()
	if built[key] {
		return nil, false
	}
	built[key] = true

	cost := schema.Cost.Constant
	if schema.Cost.Function != nil {
		v, ok := set.Value(schema.Cost.Function.Bind(binding))
		if !ok {
			// Cost is undefined until the function value is certified; the
			// action stays out of this search call entirely.
			return nil, false
		}
		cost += v
	}

	ga := &groundAction{
		step: plan.Step{Action: schema.Name, Args: args, Cost: cost},
		pre:  bindSignatures(schema.Preconditions, binding),
		add:  bindSignatures(schema.AddEffects, binding),
		del:  bindSignatures(schema.DeleteEffects, binding),
	}

	grew := false
	for _, atom := range schema.AddEffects {
		if universe.Add(eval.NewEvaluation(atom.Bind(binding))) {
			grew = true
		}
	}
	return ga, grew
}

// expandFreeParams completes a binding over parameters no precondition
// constrains by enumerating the object universe for each free parameter.
func expandFreeParams(params []problem.Variable, binding problem.Binding, objects []problem.Object) []problem.Binding {
	var free []problem.Variable
	for _, p := range params {
		if _, ok := binding[p]; !ok {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return []problem.Binding{binding}
	}

	out := []problem.Binding{binding}
	for _, v := range free {
		var next []problem.Binding
		for _, b := range out {
			for _, o := range objects {
				next = append(next, b.Extend(v, o))
			}
		}
		out = next
	}
	return out
}

// bindSignatures grounds atoms under a binding and returns their signatures.
func bindSignatures(atoms []problem.Atom, binding problem.Binding) []string {
	sigs := make([]string, len(atoms))
	for i, atom := range atoms {
		sigs[i] = atom.Bind(binding).Signature()
	}
	return sigs
}

// searchNode is one frontier entry of the uniform-cost search.
type searchNode struct {
	key string
	g   float64
	seq int
}

// frontier is a min-heap over path cost with insertion-order tie-breaking,
// which keeps runs deterministic.
type frontier []*searchNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].g != f[j].g {
		return f[i].g < f[j].g
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*searchNode)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return node
}

// parentLink records how a state was first reached at its best cost.
type parentLink struct {
	prevKey string
	step    plan.Step
}

// dijkstra runs uniform-cost search from the relational part of the
// evaluation set to the first state satisfying the goal.
func (s *ForwardSearcher) dijkstra(ctx context.Context, set *eval.Set, actions []*groundAction, goal []problem.Atom) (plan.Plan, float64, int, error) {
	goalSigs := make([]string, len(goal))
	for i, g := range goal {
		goalSigs[i] = g.Signature()
	}

	var start []string
	for _, e := range set.All() {
		if !e.HasValue() {
			start = append(start, e.Signature())
		}
	}
	sort.Strings(start)
	startKey := strings.Join(start, ";")

	dist := map[string]float64{startKey: 0}
	states := map[string][]string{startKey: start}
	parents := make(map[string]parentLink)

	pq := &frontier{}
	heap.Init(pq)
	heap.Push(pq, &searchNode{key: startKey, g: 0})
	seq := 1
	expansions := 0

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, plan.Infinity, expansions, err
		}

		n := heap.Pop(pq).(*searchNode)
		if n.g > dist[n.key] {
			continue
		}

		state := states[n.key]
		inState := make(map[string]bool, len(state))
		for _, sig := range state {
			inState[sig] = true
		}

		if containsAll(inState, goalSigs) {
			return reconstruct(parents, startKey, n.key), n.g, expansions, nil
		}

		expansions++
		if expansions > s.maxExpansions {
			break
		}

		for _, ga := range actions {
			if !containsAll(inState, ga.pre) {
				continue
			}
			nextState := apply(inState, ga)
			nextKey := strings.Join(nextState, ";")
			nextCost := n.g + ga.step.Cost
			if old, ok := dist[nextKey]; ok && old <= nextCost {
				continue
			}
			dist[nextKey] = nextCost
			states[nextKey] = nextState
			parents[nextKey] = parentLink{prevKey: n.key, step: ga.step}
			heap.Push(pq, &searchNode{key: nextKey, g: nextCost, seq: seq})
			seq++
		}
	}

	return nil, plan.Infinity, expansions, nil
}

// containsAll reports whether every signature is present in the state.
func containsAll(state map[string]bool, sigs []string) bool {
	for _, sig := range sigs {
		if !state[sig] {
			return false
		}
	}
	return true
}

// apply produces the sorted successor state under a ground action.
func apply(state map[string]bool, ga *groundAction) []string {
	next := make(map[string]bool, len(state)+len(ga.add))
	for sig := range state {
		next[sig] = true
	}
	for _, sig := range ga.del {
		delete(next, sig)
	}
	for _, sig := range ga.add {
		next[sig] = true
	}

	out := make([]string, 0, len(next))
	for sig := range next {
		out = append(out, sig)
	}
	sort.Strings(out)
	return out
}

// reconstruct walks parent links back from the goal state.
func reconstruct(parents map[string]parentLink, startKey, goalKey string) plan.Plan {
	var steps []plan.Step
	key := goalKey
	for key != startKey {
		link := parents[key]
		steps = append(steps, link.step)
		key = link.prevKey
	}

	result := plan.Empty()
	for i := len(steps) - 1; i >= 0; i-- {
		result = append(result, steps[i])
	}
	return result
}
