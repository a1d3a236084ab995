// Package cpuaffinity parses Linux CPU list strings and binds the
// calling OS thread to a real core, so a simulated scheduler.Processor
// can be backed by an actual pinned goroutine instead of a bare index.
//
// Parse's range-splitting is adapted from Kubernetes'
// pkg/kubelet/cm/cpuset (Apache License 2.0).
package cpuaffinity

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Parse constructs a CPU set from a Linux CPU list string, e.g.
// "0-3,8,12-15". See cpuset(7) FORMATS.
func Parse(s string) (unix.CPUSet, error) {
	var set unix.CPUSet
	if s == "" {
		return set, fmt.Errorf("cpuaffinity: cannot parse empty CPU list")
	}

	for _, r := range strings.Split(s, ",") {
		bounds := strings.SplitN(r, "-", 2)
		switch len(bounds) {
		case 1:
			elem, err := strconv.Atoi(bounds[0])
			if err != nil {
				return set, fmt.Errorf("cpuaffinity: %q: %w", r, err)
			}
			set.Set(elem)
		case 2:
			start, err := strconv.Atoi(bounds[0])
			if err != nil {
				return set, fmt.Errorf("cpuaffinity: %q: %w", r, err)
			}
			end, err := strconv.Atoi(bounds[1])
			if err != nil {
				return set, fmt.Errorf("cpuaffinity: %q: %w", r, err)
			}
			if start > end {
				return set, fmt.Errorf("cpuaffinity: invalid range %q (%d > %d)", r, start, end)
			}
			for e := start; e <= end; e++ {
				set.Set(e)
			}
		}
	}
	return set, nil
}

// Range calls fn with the index of every CPU set in s, ascending.
func Range(s unix.CPUSet, fn func(cpu int)) {
	count := s.Count()
	for i := 0; count > 0; i++ {
		if s.IsSet(i) {
			fn(i)
			count--
		}
	}
}

// String renders s as cpuset.7-style hex words plus a total count, for
// log lines.
func String(s unix.CPUSet) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&sb, "%08X ", s[i])
	}
	fmt.Fprintf(&sb, "total: %d", s.Count())
	return sb.String()
}

// Bind pins the calling OS thread to cpu. Callers running a
// scheduler.Processor's dispatch loop should call runtime.LockOSThread
// first, since affinity applies to the thread, not the goroutine.
func Bind(cpu int) error {
	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("cpuaffinity: SchedSetaffinity(cpu=%d): %w", cpu, err)
	}
	return nil
}

// BindSet pins the calling OS thread to any CPU in set.
func BindSet(set unix.CPUSet) error {
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("cpuaffinity: SchedSetaffinity(%s): %w", String(set), err)
	}
	return nil
}
