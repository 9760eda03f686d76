// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting SQL error strings. For example, ErrConflict signals that a
// candidate interval overlaps an accepted booking on the same room.
package repository

import "errors"

// ErrRoomNotFound is returned when an operation references a room id
// that does not exist. Handlers should translate this into an HTTP 400
// on create (the room id came from the request payload) and 404 on
// direct room lookups.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when an operation targets a booking id
// that does not exist. Deleting an already-removed booking after a race
// surfaces this error; it is a normal outcome, not a failure.
var ErrBookingNotFound = errors.New("booking not found")

// ErrConflict is returned when a candidate interval overlaps an existing
// booking for the same room. Handlers should translate this into an
// HTTP 409 response so clients can show "slot taken" messaging.
var ErrConflict = errors.New("conflict")

// ErrInvalidInterval is returned when a candidate interval does not
// satisfy start < end. Handlers should translate this into an HTTP 400.
var ErrInvalidInterval = errors.New("start must be before end")
