package scheduler

import "fmt"

// State is a scheduler node's position in its state machine. Every
// thread managed by a Scheduler instance has exactly one node, and the
// node is in exactly one of these states at any time core operations
// are not running.
type State int

const (
	// Blocked threads are not runnable and are in neither the
	// ScheduledSet nor the ReadySet.
	Blocked State = iota
	// Scheduled threads are among the N highest-priority runnable
	// threads and occupy a processor's heir slot.
	Scheduled
	// Ready threads are runnable but not currently scheduled.
	Ready
	// InTheAir is transient: the thread was just extracted from the
	// ScheduledSet and has not yet been re-placed by enqueue or
	// schedule.
	InTheAir
)

func (s State) String() string {
	switch s {
	case Blocked:
		return "BLOCKED"
	case Scheduled:
		return "SCHEDULED"
	case Ready:
		return "READY"
	case InTheAir:
		return "IN_THE_AIR"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// validTransitions is the permitted-edges table. Row = from, column =
// to.
var validTransitions = [4][4]bool{
	Blocked:   {Blocked: false, Scheduled: true, Ready: true, InTheAir: false},
	Scheduled: {Blocked: false, Scheduled: false, Ready: true, InTheAir: true},
	Ready:     {Blocked: true, Scheduled: true, Ready: false, InTheAir: false},
	InTheAir:  {Blocked: true, Scheduled: true, Ready: true, InTheAir: false},
}

// Node is the per-thread state tag. A Thread owns exactly one Node
// for the Scheduler instance it is managed by.
type Node struct {
	state State
}

func newNode() *Node {
	return &Node{state: Blocked}
}

// State returns the node's current state.
func (n *Node) State() State {
	return n.state
}

// Transition is the single guarded primitive every state mutation
// passes through. It panics if (from, to) is not one of the permitted
// edges — an invalid transition is a programming error, never a
// recoverable condition.
func (n *Node) Transition(to State) {
	if !validTransitions[n.state][to] {
		panic(fmt.Sprintf("scheduler: invalid node state transition %s -> %s", n.state, to))
	}
	n.state = to
}
