// Package booking holds the admission rules for room bookings: the
// interval-overlap predicate and the delete-authorization decision.  Both
// are pure functions; the transactional enforcement lives in the
// repository layer, which applies the same predicate as a SQL condition.
package booking

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  Touching intervals (e1 == s2 or e2 == s1) do not overlap,
// so back-to-back bookings on the same room are allowed.
//
// Callers are expected to pass ordered intervals (start before end);
// Overlaps itself does not validate ordering.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidRange reports whether start strictly precedes end.  A zero-length
// or inverted interval can never be admitted.
func ValidRange(start, end time.Time) bool {
	return start.Before(end)
}
