// Package httpinspect exposes a running scheduler instance as a
// read-only JSON API, routed with gorilla/mux: a router, one
// handleFunc per route, and a shared helper that encodes a response
// struct as JSON. There's nothing to persist here — no collections,
// just a live instance — so there's no storage layer to speak of.
package httpinspect

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rtcore/smpsched/scheduler"
	"github.com/rtcore/smpsched/trace"
)

// readyLister mirrors trace's own unexported interface: the subset of
// scheduler/priority.Set this package needs, kept local to avoid a
// three-way import coupling.
type readyLister interface {
	ReadyThreads() []*scheduler.Thread
}

// Handler serves /snapshot and /events against a live scheduler
// instance and trace recorder.
type Handler struct {
	sch   *scheduler.Scheduler
	ready readyLister
	rec   *trace.Recorder
	mux   *mux.Router
}

// New builds a Handler wired to sch/ready/rec. Callers must still hold
// (or not need) whatever lock guards sch while a request is in
// flight — handlers here only read, never mutate.
func New(sch *scheduler.Scheduler, ready readyLister, rec *trace.Recorder) *Handler {
	h := &Handler{sch: sch, ready: ready, rec: rec, mux: mux.NewRouter()}
	h.mux.HandleFunc("/snapshot", h.handleSnapshot)
	h.mux.HandleFunc("/events", h.handleEvents)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := trace.Take(h.sch, h.ready)
	sendJSON(w, snap)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if h.rec == nil {
		sendJSON(w, []trace.Event{})
		return
	}
	since := uint64(0)
	if s := r.URL.Query().Get("since"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = parsed
	}
	sendJSON(w, h.rec.Since(since))
}

func sendJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
