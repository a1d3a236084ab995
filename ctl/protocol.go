// Package ctl is a control-plane daemon and client wrapping one
// scheduler instance behind a unix-domain socket, wire-formatted with
// encoding/gob: one Action sum type gob.Register'd in an init(), a
// Server that decodes Actions off a net.Conn in a goroutine and
// replies with a Result, and a thin Client wrapping
// gob.Encoder/Decoder over net.Dial("unix", ...).
package ctl

import "encoding/gob"

// Action is the envelope every request carries; Op holds one of the
// concrete action types below.
type Action struct {
	Op interface{}
}

// ActionEnqueue requests scheduler.Enqueue for the named thread.
type ActionEnqueue struct {
	ThreadID string
	Priority int
}

// ActionExtract requests scheduler.Extract for the named thread.
type ActionExtract struct {
	ThreadID string
}

// ActionBlock requests scheduler.Block for the named thread.
type ActionBlock struct {
	ThreadID string
}

// ActionSnapshot requests a trace.Snapshot of the live instance.
type ActionSnapshot struct{}

func init() {
	gob.Register(ActionEnqueue{})
	gob.Register(ActionExtract{})
	gob.Register(ActionBlock{})
	gob.Register(ActionSnapshot{})
}

// Result is every response's envelope: exactly one of Snapshot or Err
// is set.
type Result struct {
	Snapshot []byte
	Err      string
}
