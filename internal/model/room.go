package model

import "time"

// Room is a bookable physical resource.  Rooms are reference data managed
// by administrators; the booking API only ever reads them.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – unique display name shown in the calendar.
//	CreatedAt – timestamp of creation.
type Room struct {
	ID        uint64    // rooms.id
	Name      string    // rooms.name
	CreatedAt time.Time // rooms.created_at
}
