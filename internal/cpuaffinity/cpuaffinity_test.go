package cpuaffinity

import (
	"strings"
	"testing"
)

func cpus(set interface{ IsSet(int) bool }, n int) []int {
	var out []int
	for i := 0; i < n; i++ {
		if set.IsSet(i) {
			out = append(out, i)
		}
	}
	return out
}

func TestParseSingleAndRange(t *testing.T) {
	set, err := Parse("0-2,5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := cpus(&set, 8)
	want := []int{0, 1, 2, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseInvalidRange(t *testing.T) {
	if _, err := Parse("5-2"); err == nil {
		t.Fatal("expected an error for a descending range")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected an error for an empty string")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse("abc"); err == nil {
		t.Fatal("expected an error for a non-numeric element")
	}
}

func TestRangeVisitsEverySetBit(t *testing.T) {
	set, err := Parse("1,3,4")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var visited []int
	Range(set, func(cpu int) { visited = append(visited, cpu) })
	want := []int{1, 3, 4}
	if len(visited) != len(want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("got %v, want %v", visited, want)
		}
	}
}

func TestStringReportsCount(t *testing.T) {
	set, err := Parse("0-3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := String(set)
	if s == "" {
		t.Fatal("String returned empty output")
	}
	if !strings.HasSuffix(s, "total: 4") {
		t.Fatalf("String = %q, want it to end with %q", s, "total: 4")
	}
}
