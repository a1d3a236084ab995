package scheduler

// ScheduledSet is the core-owned ordered sequence of currently
// scheduled threads. Its length equals the processor count in steady
// state, but may transiently differ while nested interrupts are
// extracting threads.
//
// Only a ReadySet implementation's InsertScheduled/Extract/Move*
// methods mutate a ScheduledSet; the core itself only ever reads it
// (Lowest, in Scheduler.Enqueue) or appends to it at initialization
// (StartIdle, once per idle thread).
type ScheduledSet struct {
	threads []*Thread
}

func newScheduledSet() *ScheduledSet {
	return &ScheduledSet{}
}

// Len returns the number of scheduled threads.
func (s *ScheduledSet) Len() int { return len(s.threads) }

// Threads returns a copy of the scheduled threads, most-preferred
// first.
func (s *ScheduledSet) Threads() []*Thread {
	out := make([]*Thread, len(s.threads))
	copy(out, s.threads)
	return out
}

// Lowest returns the tail of the set — the scheduled thread with the
// least scheduling priority — or false if the set is empty. The set
// may be transiently empty if nested interrupts put every scheduled
// thread IN_THE_AIR.
func (s *ScheduledSet) Lowest() (*Thread, bool) {
	if len(s.threads) == 0 {
		return nil, false
	}
	return s.threads[len(s.threads)-1], true
}

// Contains reports whether t is currently a member, by identity.
func (s *ScheduledSet) Contains(t *Thread) bool {
	_, ok := indexOf(s.threads, t)
	return ok
}

// Insert places t into priority order according to order and
// tieBreakAfter (see InsertOrdered). Used by ReadySet implementations'
// InsertScheduled/Move methods.
func (s *ScheduledSet) Insert(t *Thread, order OrderFunc, tieBreakAfter bool) {
	s.threads = InsertOrdered(s.threads, t, order, tieBreakAfter)
}

// Append adds t to the tail unconditionally, ignoring order. Used
// only by StartIdle: order does not matter among idle threads, which
// all share equal, lowest priority.
func (s *ScheduledSet) Append(t *Thread) {
	s.threads = append(s.threads, t)
}

// Remove deletes t by identity and reports whether it was present.
func (s *ScheduledSet) Remove(t *Thread) bool {
	threads, ok := RemoveThread(s.threads, t)
	s.threads = threads
	return ok
}

func indexOf(threads []*Thread, t *Thread) (int, bool) {
	for i, cur := range threads {
		if cur == t {
			return i, true
		}
	}
	return 0, false
}
