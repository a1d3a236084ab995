package ctl

import (
	"encoding/gob"
	"fmt"
	"net"
)

// Client dials a Server's unix socket and issues Actions over it.
type Client struct {
	c  net.Conn
	gw *gob.Encoder
	gr *gob.Decoder
}

// Dial connects to the ctl daemon listening at socketPath.
func Dial(socketPath string) (*Client, error) {
	c, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("ctl: dial %s: %w", socketPath, err)
	}
	return &Client{c: c, gw: gob.NewEncoder(c), gr: gob.NewDecoder(c)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.c.Close() }

func (c *Client) do(op interface{}) (Result, error) {
	if err := c.gw.Encode(Action{Op: op}); err != nil {
		return Result{}, fmt.Errorf("ctl: encode: %w", err)
	}
	var result Result
	if err := c.gr.Decode(&result); err != nil {
		return Result{}, fmt.Errorf("ctl: decode: %w", err)
	}
	if result.Err != "" {
		return result, fmt.Errorf("ctl: %s", result.Err)
	}
	return result, nil
}

// Enqueue requests scheduler.Enqueue for threadID, creating it at
// priority if it isn't already known to the daemon.
func (c *Client) Enqueue(threadID string, priority int) (Result, error) {
	return c.do(ActionEnqueue{ThreadID: threadID, Priority: priority})
}

// Extract requests scheduler.Extract for threadID.
func (c *Client) Extract(threadID string) (Result, error) {
	return c.do(ActionExtract{ThreadID: threadID})
}

// Block requests scheduler.Block for threadID.
func (c *Client) Block(threadID string) (Result, error) {
	return c.do(ActionBlock{ThreadID: threadID})
}

// Snapshot requests a trace.Snapshot of the live instance, without
// mutating anything.
func (c *Client) Snapshot() (Result, error) {
	return c.do(ActionSnapshot{})
}
