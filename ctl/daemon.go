package ctl

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os/user"
	"sync"

	"inet.af/peercred"

	"github.com/rtcore/smpsched/scheduler"
	"github.com/rtcore/smpsched/scheduler/priority"
	"github.com/rtcore/smpsched/trace"
)

// Server wraps one scheduler instance, its ready set, and a recorder,
// and serves Actions over accepted connections.
type Server struct {
	mu  sync.Mutex
	sch *scheduler.Scheduler
	rs  *priority.Set
	rec *trace.Recorder

	threads map[string]*scheduler.Thread
}

// NewServer wraps an already-constructed scheduler instance. rec may
// be nil; if set, the Server itself feeds it one event per handled
// enqueue, extract or block action (snapshot actions record nothing),
// tagged with the caller's resolved username, rather than
// leaving that to sch.Hook (which never sees peer credentials).
func NewServer(sch *scheduler.Scheduler, rs *priority.Set, rec *trace.Recorder) *Server {
	return &Server{sch: sch, rs: rs, rec: rec, threads: make(map[string]*scheduler.Thread)}
}

// Serve accepts one connection and processes Actions from it until
// EOF, gob-encoded in both directions. It returns when the connection
// closes; callers typically run it in its own goroutine per accepted
// net.Conn.
func (s *Server) Serve(c net.Conn) {
	defer c.Close()

	actor := "???"
	if cred, err := peercred.Get(c); err == nil {
		if uid, ok := cred.UserID(); ok {
			if u, err := user.LookupId(uid); err == nil {
				actor = u.Username
			}
		}
	}

	gr := gob.NewDecoder(c)
	gw := gob.NewEncoder(c)
	for {
		var a Action
		if err := gr.Decode(&a); err != nil {
			if err != io.EOF {
				log.Printf("ctl: decode: %v", err)
			}
			return
		}

		result := s.handle(actor, a)
		if err := gw.Encode(result); err != nil {
			log.Printf("ctl: encode: %v", err)
			return
		}
	}
}

func (s *Server) handle(actor string, a Action) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op := a.Op.(type) {
	case ActionEnqueue:
		t := s.threadFor(op.ThreadID, op.Priority)
		s.sch.Enqueue(t)
		s.note("enqueue", op.ThreadID, actor)
	case ActionExtract:
		t, ok := s.threads[op.ThreadID]
		if !ok {
			return Result{Err: fmt.Sprintf("unknown thread %q", op.ThreadID)}
		}
		s.sch.Extract(t)
		s.note("extract", op.ThreadID, actor)
	case ActionBlock:
		t, ok := s.threads[op.ThreadID]
		if !ok {
			return Result{Err: fmt.Sprintf("unknown thread %q", op.ThreadID)}
		}
		s.sch.Block(t)
		s.note("block", op.ThreadID, actor)
	case ActionSnapshot:
		// no mutation, just the read below
	default:
		return Result{Err: fmt.Sprintf("ctl: unknown action %T", op)}
	}
	return s.snapshotResult()
}

func (s *Server) note(kind, threadID, actor string) {
	if s.rec == nil {
		return
	}
	s.rec.Hook(kind, threadID, map[string]string{"actor": actor})
}

func (s *Server) threadFor(id string, priorityValue int) *scheduler.Thread {
	if t, ok := s.threads[id]; ok {
		t.SetPriority(priorityValue)
		return t
	}
	t := scheduler.NewThread(id, priorityValue)
	s.threads[id] = t
	return t
}

func (s *Server) snapshotResult() Result {
	b, err := json.Marshal(trace.Take(s.sch, s.rs))
	if err != nil {
		return Result{Err: err.Error()}
	}
	return Result{Snapshot: b}
}
