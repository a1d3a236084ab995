// Package priority implements a concrete scheduler.ReadySet: a slice
// of ready threads kept in priority order, with FIFO and LIFO variants
// that share one order predicate and differ only in where insertion
// places equal-priority ties.
package priority

import "github.com/rtcore/smpsched/scheduler"

// ByPriority orders threads by their numeric Priority field, lower
// value outranking higher. Ties (equal priority) are never resolved
// here: see Set's tie-break field.
func ByPriority(a, b *scheduler.Thread) bool {
	return a.Priority() < b.Priority()
}

// Set is a priority-ordered ReadySet. Use NewFIFO or NewLIFO to pick
// how equal-priority ties are broken on insertion.
type Set struct {
	order         scheduler.OrderFunc
	tieBreakAfter bool
	ready         []*scheduler.Thread
}

// NewFIFO returns a Set where, among equal-priority threads, earlier
// insertions stay ahead of later ones — the default, stable tie-break.
func NewFIFO(order scheduler.OrderFunc) *Set {
	return &Set{order: order, tieBreakAfter: true}
}

// NewLIFO returns a Set where, among equal-priority threads, the most
// recently inserted is placed ahead of earlier ones.
func NewLIFO(order scheduler.OrderFunc) *Set {
	return &Set{order: order, tieBreakAfter: false}
}

// Order implements scheduler.ReadySet.
func (s *Set) Order(a, b *scheduler.Thread) bool { return s.order(a, b) }

// GetHighestReady implements scheduler.ReadySet.
func (s *Set) GetHighestReady() (*scheduler.Thread, bool) {
	if len(s.ready) == 0 {
		return nil, false
	}
	return s.ready[0], true
}

// InsertReady implements scheduler.ReadySet. The caller has already
// transitioned thread's node to Ready.
func (s *Set) InsertReady(thread *scheduler.Thread) {
	s.ready = scheduler.InsertOrdered(s.ready, thread, s.order, s.tieBreakAfter)
}

// InsertScheduled implements scheduler.ReadySet. The caller has
// already transitioned thread's node to Scheduled.
func (s *Set) InsertScheduled(scheduled *scheduler.ScheduledSet, thread *scheduler.Thread) {
	scheduled.Insert(thread, s.order, s.tieBreakAfter)
}

// MoveReadyToScheduled implements scheduler.ReadySet.
func (s *Set) MoveReadyToScheduled(scheduled *scheduler.ScheduledSet, thread *scheduler.Thread) {
	s.removeReady(thread)
	scheduled.Insert(thread, s.order, s.tieBreakAfter)
}

// MoveScheduledToReady implements scheduler.ReadySet.
func (s *Set) MoveScheduledToReady(scheduled *scheduler.ScheduledSet, thread *scheduler.Thread) {
	scheduled.Remove(thread)
	s.ready = scheduler.InsertOrdered(s.ready, thread, s.order, s.tieBreakAfter)
}

// Extract implements scheduler.ReadySet: it removes thread from
// whichever of scheduled or this Set's own ready slice holds it, and
// performs the matching state transition.
func (s *Set) Extract(scheduled *scheduler.ScheduledSet, thread *scheduler.Thread) {
	switch thread.Node().State() {
	case scheduler.Scheduled:
		if !scheduled.Remove(thread) {
			panic("priority: extract: thread marked SCHEDULED but absent from the scheduled set")
		}
		thread.Node().Transition(scheduler.InTheAir)
	case scheduler.Ready:
		if !s.removeReady(thread) {
			panic("priority: extract: thread marked READY but absent from the ready set")
		}
		thread.Node().Transition(scheduler.Blocked)
	default:
		panic("priority: extract called on a thread that is neither scheduled nor ready")
	}
}

func (s *Set) removeReady(thread *scheduler.Thread) bool {
	ready, ok := scheduler.RemoveThread(s.ready, thread)
	s.ready = ready
	return ok
}

// ReadyThreads returns a copy of the ready slice, most-preferred
// first, for introspection and tests.
func (s *Set) ReadyThreads() []*scheduler.Thread {
	out := make([]*scheduler.Thread, len(s.ready))
	copy(out, s.ready)
	return out
}
