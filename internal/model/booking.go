package model

import "time"

// Booking is a reservation of one room for one half-open time interval
// [StartTime, EndTime).  Bookings are created only through the admission
// path in the booking repository and are never updated in place; removal
// is the only mutation.
//
// UserID is nullable: bookings created before authentication was introduced
// carry no owner, and the anonymous create path is still permitted for
// compatibility.
//
// Fields:
//
//	ID        – primary key identifier, assigned on insert.
//	RoomID    – room being reserved.
//	UserID    – owning user, nil when the booking was created anonymously.
//	StartTime – inclusive start of the interval (UTC).
//	EndTime   – exclusive end of the interval (UTC).
//	Notes     – optional free-text note shown in the calendar.
//	CreatedAt – timestamp of creation.
type Booking struct {
	ID        uint64    // bookings.id
	RoomID    uint64    // bookings.room_id
	UserID    *uint64   // bookings.user_id (nullable)
	StartTime time.Time // bookings.start_time
	EndTime   time.Time // bookings.end_time
	Notes     *string   // bookings.notes (nullable)
	CreatedAt time.Time // bookings.created_at
}
