package scheduler

import "testing"

func TestNodeTransitionTable(t *testing.T) {
	tests := []struct {
		from  State
		to    State
		valid bool
	}{
		{Blocked, Scheduled, true},
		{Blocked, Ready, true},
		{Blocked, Blocked, false},
		{Blocked, InTheAir, false},

		{Scheduled, Ready, true},
		{Scheduled, InTheAir, true},
		{Scheduled, Blocked, false},
		{Scheduled, Scheduled, false},

		{Ready, Blocked, true},
		{Ready, Scheduled, true},
		{Ready, Ready, false},
		{Ready, InTheAir, false},

		{InTheAir, Blocked, true},
		{InTheAir, Scheduled, true},
		{InTheAir, Ready, true},
		{InTheAir, InTheAir, false},
	}

	for _, tc := range tests {
		n := &Node{state: tc.from}
		func() {
			defer func() {
				r := recover()
				if tc.valid && r != nil {
					t.Errorf("%s -> %s: unexpected panic: %v", tc.from, tc.to, r)
				}
				if !tc.valid && r == nil {
					t.Errorf("%s -> %s: expected panic, got none", tc.from, tc.to)
				}
			}()
			n.Transition(tc.to)
		}()
		if tc.valid && n.State() != tc.to {
			t.Errorf("%s -> %s: state is %s, want %s", tc.from, tc.to, n.State(), tc.to)
		}
	}
}

func TestNewNodeStartsBlocked(t *testing.T) {
	n := newNode()
	if n.State() != Blocked {
		t.Fatalf("new node state = %s, want BLOCKED", n.State())
	}
}
