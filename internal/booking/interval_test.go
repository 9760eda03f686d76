package booking

import (
	"testing"
	"time"
)

func at(h int) time.Time {
	return time.Date(2026, time.March, 10, h, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint before", at(9), at(10), at(11), at(12), false},
		{"disjoint after", at(11), at(12), at(9), at(10), false},
		{"identical", at(9), at(11), at(9), at(11), true},
		{"partial overlap left", at(9), at(11), at(10), at(12), true},
		{"partial overlap right", at(10), at(12), at(9), at(11), true},
		{"contained", at(9), at(13), at(10), at(11), true},
		{"containing", at(10), at(11), at(9), at(13), true},
		// Half-open intervals: one ending exactly where the other starts
		// is back-to-back, not a conflict.
		{"touching end to start", at(9), at(10), at(10), at(11), false},
		{"touching start to end", at(10), at(11), at(9), at(10), false},
		{"one minute overlap", at(9), time.Date(2026, time.March, 10, 10, 1, 0, 0, time.UTC), at(10), at(11), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Errorf("Overlaps(%v, %v, %v, %v) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
			// Overlap is symmetric in the two intervals.
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Errorf("Overlaps not symmetric for %s", tc.name)
			}
		})
	}
}

func TestValidRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"start before end", at(9), at(10), true},
		{"equal endpoints", at(9), at(9), false},
		{"start after end", at(10), at(9), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidRange(tc.start, tc.end); got != tc.want {
				t.Errorf("ValidRange(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestZeroLengthIntervalNeverOverlaps(t *testing.T) {
	// A degenerate [t, t) interval conflicts with nothing, which is why
	// creation rejects it before the overlap check ever runs.
	if Overlaps(at(10), at(10), at(9), at(12)) {
		t.Error("zero-length interval reported as overlapping")
	}
}
