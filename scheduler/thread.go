package scheduler

// Thread is the externally-referenced runnable unit: it has a
// priority, a current-CPU field, and may or may not presently be
// executing on some processor. A Thread exclusively owns its Node.
//
// Priority is compared numerically; by convention a lower value
// outranks a higher one, but the Scheduler core never assumes this
// itself — every comparison goes through an injected OrderFunc.
type Thread struct {
	id       string
	priority int
	node     *Node

	cpu       *Processor
	executing bool
}

// NewThread creates a new thread managed by no instance yet; its node
// starts Blocked.
func NewThread(id string, priority int) *Thread {
	return &Thread{id: id, priority: priority, node: newNode()}
}

// ID returns the thread's identity.
func (t *Thread) ID() string { return t.id }

// Priority returns the thread's current scheduling priority.
func (t *Thread) Priority() int { return t.priority }

// SetPriority changes the thread's priority. It does not itself
// reorder any set the thread may currently be a member of; callers
// wanting the new priority reflected must extract and re-enqueue the
// thread.
func (t *Thread) SetPriority(p int) { t.priority = p }

// Node returns the thread's scheduler node.
func (t *Thread) Node() *Node { return t.node }

// CPU returns the processor this thread is currently assigned to, or
// nil if it has never been assigned one by this instance.
func (t *Thread) CPU() *Processor { return t.cpu }

// SetCPU mutates the thread's current-CPU field.
func (t *Thread) SetCPU(p *Processor) { t.cpu = p }

// Executing reports whether the thread is presently the one actually
// running on its assigned processor, as opposed to merely being its
// heir. The core consults this in AllocateProcessor; it is set by the
// external dispatcher via SetExecuting, never by the core itself.
func (t *Thread) Executing() bool { return t.executing && t.cpu != nil }

// SetExecuting marks whether the thread is the one actually running
// on its processor. Callers (a dispatcher, or a test harness
// simulating one) set this outside of core operations, under the
// scheduler lock.
func (t *Thread) SetExecuting(executing bool) { t.executing = executing }
