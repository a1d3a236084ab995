// Package trace records scheduler transition events and captures
// point-in-time snapshots for introspection — the dashboard and CLI
// never read scheduler internals directly, only this package's output.
package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rtcore/smpsched/scheduler"
)

// Event is one scheduler-core operation, timestamped and sequenced.
type Event struct {
	Seq      uint64            `json:"seq"`
	At       time.Time         `json:"at"`
	Kind     string            `json:"kind"`
	ThreadID string            `json:"thread_id"`
	Detail   map[string]string `json:"detail,omitempty"`
}

// Recorder is a bounded ring buffer of Events. Its Hook method matches
// the signature scheduler.Scheduler.Hook expects, so wiring a Recorder
// into a live instance is one assignment:
//
//	rec := trace.NewRecorder(1024)
//	sched.Hook = rec.Hook
type Recorder struct {
	mu      sync.Mutex
	id      uuid.UUID
	events  []Event
	next    int
	count   int
	nextSeq uint64
}

// NewRecorder allocates a Recorder holding at most capacity events.
// Once full, each new event overwrites the oldest.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		panic("trace: capacity must be positive")
	}
	return &Recorder{id: uuid.New(), events: make([]Event, capacity)}
}

// ID identifies this recorder instance. A fresh ID is generated by
// every NewRecorder call, so it changes when the process restarts.
func (r *Recorder) ID() uuid.UUID { return r.id }

// Hook appends an event, evicting the oldest if the ring is full.
func (r *Recorder) Hook(kind, threadID string, detail map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.next] = Event{
		Seq:      r.nextSeq,
		At:       time.Now(),
		Kind:     kind,
		ThreadID: threadID,
		Detail:   detail,
	}
	r.next = (r.next + 1) % len(r.events)
	r.nextSeq++
	if r.count < len(r.events) {
		r.count++
	}
}

// Since returns every recorded event with Seq >= since, oldest first.
func (r *Recorder) Since(since uint64) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, 0, r.count)
	start := r.next - r.count
	if start < 0 {
		start += len(r.events)
	}
	for i := 0; i < r.count; i++ {
		ev := r.events[(start+i)%len(r.events)]
		if ev.Seq >= since {
			out = append(out, ev)
		}
	}
	return out
}

// ProcessorSnapshot is one processor's dispatch state.
type ProcessorSnapshot struct {
	ID                int    `json:"id"`
	HeirID            string `json:"heir_id,omitempty"`
	DispatchNecessary bool   `json:"dispatch_necessary"`
}

// Snapshot is an immutable, point-in-time read of a scheduler
// instance: the ScheduledSet and ReadySet as ordered thread-ID slices,
// and every processor's heir/dispatch-necessary pair.
//
// Snapshot never takes the scheduler's lock itself — the caller must
// already hold whatever lock serializes access to the instance, the
// same rule every core operation follows.
type Snapshot struct {
	Scheduled  []string            `json:"scheduled"`
	Ready      []string            `json:"ready"`
	Processors []ProcessorSnapshot `json:"processors"`
}

// readyLister is the subset of a ReadySet implementation (see
// scheduler/priority.Set) that Snapshot needs for introspection,
// without importing that package and creating a cycle back here.
type readyLister interface {
	ReadyThreads() []*scheduler.Thread
}

// Take captures a Snapshot of sched using ready for the ready-set
// contents.
func Take(sched *scheduler.Scheduler, ready readyLister) Snapshot {
	snap := Snapshot{
		Scheduled:  threadIDs(sched.Scheduled().Threads()),
		Ready:      threadIDs(ready.ReadyThreads()),
		Processors: make([]ProcessorSnapshot, len(sched.Processors())),
	}
	for i, p := range sched.Processors() {
		ps := ProcessorSnapshot{ID: p.ID(), DispatchNecessary: p.DispatchNecessary()}
		if heir := p.Heir(); heir != nil {
			ps.HeirID = heir.ID()
		}
		snap.Processors[i] = ps
	}
	return snap
}

func threadIDs(threads []*scheduler.Thread) []string {
	out := make([]string, len(threads))
	for i, t := range threads {
		out[i] = t.ID()
	}
	return out
}
