// Package ground implements the grounding side of the planner: the FIFO
// queue of pending stream instances and the Instantiator that discovers new
// instances as evaluations arrive.
package ground

import (
	"github.com/zero-day-ai/streamplan/problem"
	"github.com/zero-day-ai/streamplan/stream"
)

// Queue is the FIFO of stream instances that may still yield results. Order
// is the fairness contract: instances are advanced round-robin by popping
// the front and re-appending non-exhausted instances at the back.
//
// A Queue is exclusively owned by one solving run and is not safe for
// concurrent use.
type Queue struct {
	items []*stream.Instance
}

// NewQueue creates an empty instance queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Len returns the number of queued instances.
func (q *Queue) Len() int {
	return len(q.items)
}

// PopFront removes and returns the front instance, or nil when the queue is
// empty.
func (q *Queue) PopFront() *stream.Instance {
	if len(q.items) == 0 {
		return nil
	}
	inst := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return inst
}

// Append adds an instance at the back.
func (q *Queue) Append(inst *stream.Instance) {
	q.items = append(q.items, inst)
}

// Rotate moves the front instance to the back and returns it, or returns nil
// when the queue is empty.
func (q *Queue) Rotate() *stream.Instance {
	inst := q.PopFront()
	if inst != nil {
		q.Append(inst)
	}
	return inst
}

// ExtractFunctions removes every function-kind instance from the queue and
// returns them in queue order. The remaining stream-kind instances keep their
// original relative order: a stable partition, so repeated sweeps cannot
// starve or reorder pending stream work.
func (q *Queue) ExtractFunctions() []*stream.Instance {
	var functions []*stream.Instance
	general := q.items[:0]
	for _, inst := range q.items {
		if inst.Kind() == problem.KindFunction {
			functions = append(functions, inst)
			continue
		}
		general = append(general, inst)
	}
	// Clear the tail so extracted instances do not linger in the backing array.
	for i := len(general); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = general
	return functions
}

// Instances returns a snapshot of the queued instances in order.
func (q *Queue) Instances() []*stream.Instance {
	out := make([]*stream.Instance, len(q.items))
	copy(out, q.items)
	return out
}
