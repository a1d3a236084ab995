package scheduler

// ReadySet is the extension point: the pluggable capability set a
// concrete scheduler (simple priority, EDF, ...) supplies. The core is
// polymorphic over exactly these primitives; differing concrete
// schedulers vary only in these methods and in Order.
//
// Implementations are handed the owning Scheduler's ScheduledSet on
// every call that needs to touch it, rather than owning a copy of it
// themselves — the ScheduledSet is core-owned data; ReadySet
// implementations are trusted to mutate it only through its exported
// Insert/Append/Remove methods and never to retain it beyond the call.
type ReadySet interface {
	// Order reports whether a outranks b (see OrderFunc).
	Order(a, b *Thread) bool

	// GetHighestReady returns the highest-priority ready thread
	// without removing it, or false if the ready set is empty.
	GetHighestReady() (*Thread, bool)

	// Extract removes thread from whichever set currently holds it —
	// the ScheduledSet or this ReadySet's own ready structure — and
	// performs the corresponding state transition (SCHEDULED ->
	// IN_THE_AIR, or READY -> BLOCKED). The core never touches either
	// set directly here; this is the concrete layer's job because the
	// shape of the ready structure is opaque to the core.
	Extract(scheduled *ScheduledSet, thread *Thread)

	// InsertReady adds thread to the ready structure in priority
	// order. The caller has already performed thread's state
	// transition to Ready.
	InsertReady(thread *Thread)

	// InsertScheduled adds thread to scheduled in priority order. The
	// caller has already performed thread's state transition to
	// Scheduled.
	InsertScheduled(scheduled *ScheduledSet, thread *Thread)

	// MoveReadyToScheduled removes thread from the ready structure and
	// inserts it into scheduled. The caller has already transitioned
	// thread's state (via AllocateProcessor).
	MoveReadyToScheduled(scheduled *ScheduledSet, thread *Thread)

	// MoveScheduledToReady removes thread from scheduled and inserts
	// it into the ready structure. The caller has already transitioned
	// thread's state to Ready.
	MoveScheduledToReady(scheduled *ScheduledSet, thread *Thread)
}
