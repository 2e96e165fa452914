package solver

import (
	"sync"
	"time"

	"github.com/zero-day-ai/streamplan/plan"
)

// Store tracks the best plan found during a solving run together with the
// run's budgets. It is the anytime answer: best cost only ever decreases,
// and the termination predicate decides when a run stops asking for more.
type Store struct {
	mu sync.RWMutex

	maxTime time.Duration
	maxCost float64
	verbose bool

	startTime time.Time
	bestPlan  plan.Plan
	bestCost  float64
}

// NewStore creates a Store with the given budgets. The run clock starts
// immediately. A maxTime of zero means no time budget; a maxCost of
// plan.Infinity accepts the first plan found at any cost.
func NewStore(maxTime time.Duration, maxCost float64, verbose bool) *Store {
	return &Store{
		maxTime:   maxTime,
		maxCost:   maxCost,
		verbose:   verbose,
		startTime: time.Now(),
		bestCost:  plan.Infinity,
	}
}

// AddPlan records a candidate answer. Only a found plan that strictly beats
// the best recorded cost is kept; everything else is a no-op. It reports
// whether the candidate improved the best answer.
func (s *Store) AddPlan(p plan.Plan, cost float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Found() || cost >= s.bestCost {
		return false
	}
	s.bestPlan = p
	s.bestCost = cost
	return true
}

// BestPlan returns the best plan recorded so far, or nil when none has been.
func (s *Store) BestPlan() plan.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bestPlan
}

// BestCost returns the cost of the best recorded plan, or plan.Infinity.
func (s *Store) BestCost() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bestCost
}

// HasSolution reports whether any plan has been recorded.
func (s *Store) HasSolution() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bestPlan.Found()
}

// Elapsed returns the time since the store was created.
func (s *Store) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// Verbose reports whether per-application output was requested for this run.
func (s *Store) Verbose() bool {
	return s.verbose
}

// Solved reports whether the best recorded cost meets the cost budget. A
// best cost exactly equal to maxCost counts as solved, so a zero budget is
// satisfiable by a zero-cost plan.
func (s *Store) Solved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solvedLocked()
}

// Terminated is the run's stop predicate: the cost budget has been met or
// the time budget has elapsed.
func (s *Store) Terminated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.solvedLocked() {
		return true
	}
	return s.maxTime > 0 && s.maxTime <= time.Since(s.startTime)
}

// solvedLocked reports whether the best cost meets the cost budget.
// Must be called with lock held.
func (s *Store) solvedLocked() bool {
	return s.bestPlan.Found() && s.bestCost <= s.maxCost
}
