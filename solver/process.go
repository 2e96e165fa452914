package solver

import (
	"context"
	"errors"

	"github.com/zero-day-ai/streamplan/eval"
	"github.com/zero-day-ai/streamplan/ground"
	"github.com/zero-day-ai/streamplan/stream"
)

// processNext is the single-instance advance: pop the front instance,
// discard it if it is already exhausted, otherwise run one result-producing
// step. Every newly certified evaluation is fed back into the grounding
// engine, so one advance performs a single-step expansion, not a fixpoint.
// An instance that may still produce results goes to the back of the queue.
func (s *Solver) processNext(ctx context.Context, set *eval.Set, inst *ground.Instantiator) error {
	instance := inst.Queue().PopFront()
	if instance == nil || instance.Enumerated() {
		return nil
	}
	return s.advance(ctx, set, inst, instance)
}

// advance runs one result-producing step of an already-popped instance.
// Generator faults propagate untouched and abort the run.
func (s *Solver) advance(ctx context.Context, set *eval.Set, inst *ground.Instantiator, instance *stream.Instance) error {
	results, err := instance.Next(ctx)
	if err != nil {
		return err
	}

	added := set.Certify(results)
	for _, e := range added {
		inst.AddAtom(e)
	}

	logFn := s.logger.Debug
	if s.verbose {
		logFn = s.logger.Info
	}
	logFn("applied stream instance",
		"instance", instance.Signature(),
		"results", len(results),
		"new", len(added),
		"enumerated", instance.Enumerated())

	if !instance.Enumerated() {
		inst.Queue().Append(instance)
	}
	return nil
}

// functionSweep resolves every function instance queued at call entry to
// exhaustion, unconditionally of any budget: deterministic single-value
// derivations can only sharpen what search sees. Stream instances keep
// their relative order and are not advanced. Instances grounded during the
// sweep land at the back of the queue and wait for the next sweep.
func (s *Solver) functionSweep(ctx context.Context, set *eval.Set, inst *ground.Instantiator) error {
	for _, instance := range inst.Queue().ExtractFunctions() {
		if instance.Enumerated() {
			continue
		}
		if err := s.advance(ctx, set, inst, instance); err != nil {
			return err
		}
	}
	return nil
}

// layeredSweep runs the given number of rounds; each round advances exactly
// the instances present at its start, in FIFO order, so mid-round appends
// wait for the next round. The sweep aborts before any probe once the run
// is terminated, leaving the queue partially advanced.
func (s *Solver) layeredSweep(ctx context.Context, set *eval.Set, inst *ground.Instantiator, store *Store, layers int) error {
	for layer := 0; layer < layers; layer++ {
		for i := inst.Queue().Len(); i > 0; i-- {
			if s.terminated(ctx, store) {
				return nil
			}
			if err := s.processNext(ctx, set, inst); err != nil {
				return err
			}
		}
	}
	return nil
}

// terminated folds cooperative context cancellation into the store's stop
// predicate. Both are advisory: nothing preempts an in-flight generator or
// search call.
func (s *Solver) terminated(ctx context.Context, store *Store) bool {
	return ctx.Err() != nil || store.Terminated()
}

// budgetStop reports whether an error from a generator or search call is
// context cancellation, which ends a run gracefully with the best answer so
// far rather than aborting it.
func budgetStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
