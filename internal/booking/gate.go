package booking

// Principal identifies the authenticated caller of a mutating operation.
// A nil *Principal means the request carried no valid session.
type Principal struct {
	UserID uint64 // application user id from the session token
	Admin  bool   // administrative capability, from the token's admin claim
}

// DeleteDecision is the outcome of the delete-authorization check.
type DeleteDecision int

const (
	// DeleteAllowed means the caller may remove the booking.
	DeleteAllowed DeleteDecision = iota
	// DeleteDenied means the booking exists but the caller lacks the
	// capability to remove it.
	DeleteDenied
)

// CanDelete decides whether a principal may delete a booking owned by
// ownerID.  ownerID is nil for bookings created anonymously.
//
// Rules:
//   - ownerless bookings are deletable by anyone, authenticated or not
//     (compatibility carve-out for rows created before login existed;
//     intentionally not widened to any other case);
//   - administrators may delete any booking;
//   - otherwise the caller must be the owning user.
func CanDelete(p *Principal, ownerID *uint64) DeleteDecision {
	if ownerID == nil {
		return DeleteAllowed
	}
	if p == nil {
		return DeleteDenied
	}
	if p.Admin || p.UserID == *ownerID {
		return DeleteAllowed
	}
	return DeleteDenied
}
