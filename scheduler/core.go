// Package scheduler implements the core of an SMP thread scheduler:
// the scheduler-node state machine, processor allocation, and the
// enqueue/extract/schedule/block/start-idle primitives that keep the
// N highest-priority runnable threads executing across N processors.
//
// The package does not choose a ready-queue data structure. Callers
// supply one by implementing ReadySet (see the scheduler/priority
// subpackage for a ready-made priority-ordered slice). Every core
// operation assumes its caller already holds whatever lock serializes
// access to the Scheduler instance — operations never lock
// internally, matching a "single writer under a critical section"
// model.
package scheduler

import "fmt"

// Scheduler is one scheduler instance: a fixed processor set, a
// ScheduledSet, and a pluggable ReadySet.
type Scheduler struct {
	processors []*Processor
	scheduled  *ScheduledSet
	ready      ReadySet

	// CurrentProcessor is the index of the processor this goroutine
	// is logically running on while it holds the lock and calls a
	// core operation — analogous to reading the current CPU index. Set it
	// before calling an operation if you want AllocateProcessor to
	// skip sending an IPI to yourself. -1 (the default) means "not one
	// of our processors", so an IPI is always considered.
	CurrentProcessor int

	// SendIPI, if non-nil, is called with a processor index whenever
	// AllocateProcessor needs to nudge a remote processor. Left nil in
	// tests that only check state, not delivery.
	SendIPI func(processorID int)

	// Hook, if non-nil, is called after every successful core
	// operation with a short event kind, the affected thread's ID, and
	// free-form detail — purely for observability (see package trace);
	// the core never reads it back.
	Hook func(kind string, threadID string, detail map[string]string)
}

// New creates a scheduler instance managing numProcessors processors,
// with no threads yet assigned. Seed it with StartIdle before any
// other operation.
func New(numProcessors int, ready ReadySet) *Scheduler {
	if numProcessors <= 0 {
		panic("scheduler: numProcessors must be positive")
	}
	if ready == nil {
		panic("scheduler: ready set must not be nil")
	}
	s := &Scheduler{
		scheduled:        newScheduledSet(),
		ready:            ready,
		CurrentProcessor: -1,
	}
	s.processors = make([]*Processor, numProcessors)
	for i := range s.processors {
		s.processors[i] = &Processor{id: i, instance: s}
	}
	return s
}

// Processors returns the instance's processor records, indexed by
// processor ID.
func (s *Scheduler) Processors() []*Processor { return s.processors }

// Scheduled returns the instance's ScheduledSet.
func (s *Scheduler) Scheduled() *ScheduledSet { return s.scheduled }

func (s *Scheduler) trace(kind string, t *Thread, detail map[string]string) {
	if s.Hook == nil || t == nil {
		return
	}
	s.Hook(kind, t.ID(), detail)
}

// Enqueue places thread into the scheduled or ready set, displacing a
// lower-priority thread if necessary.
func (s *Scheduler) Enqueue(thread *Thread) {
	node := thread.Node()
	switch node.State() {
	case InTheAir:
		s.enqueueInTheAir(thread, node)
	case Blocked, Ready:
		s.enqueueNotScheduled(thread, node)
	default:
		panic(fmt.Sprintf("scheduler: enqueue called on thread %q in state %s", thread.ID(), node.State()))
	}
	s.trace("enqueue", thread, nil)
}

// enqueueInTheAir handles the case where thread was just extracted
// from the scheduled set and must be re-seated.
func (s *Scheduler) enqueueInTheAir(thread *Thread, node *Node) {
	highest, ok := s.ready.GetHighestReady()
	if ok && !s.ready.Order(thread, highest) {
		// highest outranks (or ties) thread: thread goes back to
		// ready, highest takes the slot thread is vacating.
		node.Transition(Ready)
		s.allocateProcessor(highest, thread)
		s.ready.InsertReady(thread)
		s.ready.MoveReadyToScheduled(s.scheduled, highest)
	} else {
		// No ready thread outranks thread (or none is ready): thread
		// re-occupies the slot it already owned. No reallocation.
		node.Transition(Scheduled)
		s.ready.InsertScheduled(s.scheduled, thread)
	}
}

// enqueueNotScheduled handles the case where thread is currently
// BLOCKED or READY.
func (s *Scheduler) enqueueNotScheduled(thread *Thread, node *Node) {
	lowest, ok := s.scheduled.Lowest()
	if ok && s.ready.Order(thread, lowest) {
		// thread strictly outranks the lowest scheduled thread:
		// displace it.
		lowest.Node().Transition(Ready)
		s.allocateProcessor(thread, lowest)
		s.ready.InsertScheduled(s.scheduled, thread)
		s.ready.MoveScheduledToReady(s.scheduled, lowest)
	} else {
		// ScheduledSet is full of threads at least as good as thread
		// (or transiently empty, e.g. a nested-interrupt edge case):
		// thread becomes ready.
		node.Transition(Ready)
		s.ready.InsertReady(thread)
	}
}

// Extract removes thread from whichever set holds it, delegating
// entirely to the ReadySet implementation.
func (s *Scheduler) Extract(thread *Thread) {
	s.ready.Extract(s.scheduled, thread)
	s.trace("extract", thread, nil)
}

// Schedule re-seats a thread left IN_THE_AIR by a prior operation. It
// is a no-op for a thread in any other state.
func (s *Scheduler) Schedule(thread *Thread) {
	node := thread.Node()
	if node.State() != InTheAir {
		return
	}
	node.Transition(Blocked)

	highest, ok := s.ready.GetHighestReady()
	if !ok {
		// schedule's IN_THE_AIR branch requires a non-empty ready set
		// — in a real RTOS, an idle thread is always ready. An empty
		// ready set here means a processor slot would go unfilled,
		// violating the scheduler invariant upstream.
		panic(fmt.Sprintf("scheduler: schedule(%q) found an empty ready set", thread.ID()))
	}
	s.allocateProcessor(highest, thread)
	s.ready.MoveReadyToScheduled(s.scheduled, highest)
	s.trace("schedule", thread, nil)
}

// Block removes thread from its current set and immediately
// reschedules, leaving it BLOCKED. Calling Block on a thread that is
// already BLOCKED is a no-op: there is no set left to extract it from.
func (s *Scheduler) Block(thread *Thread) {
	if thread.Node().State() == Blocked {
		return
	}
	s.Extract(thread)
	s.Schedule(thread)
	s.trace("block", thread, nil)
}

// StartIdle seeds the scheduler at initialization time: thread is
// placed directly into SCHEDULED, appended to the ScheduledSet (order
// doesn't matter — all idle threads share the lowest priority), and
// bound to processorID.
func (s *Scheduler) StartIdle(thread *Thread, processorID int) {
	if processorID < 0 || processorID >= len(s.processors) {
		panic(fmt.Sprintf("scheduler: start_idle: processor %d out of range", processorID))
	}
	thread.Node().Transition(Scheduled)
	p := s.processors[processorID]
	thread.SetCPU(p)
	s.scheduled.Append(thread)
	p.heir.Store(thread)
	s.trace("start_idle", thread, map[string]string{"processor": fmt.Sprint(processorID)})
}
