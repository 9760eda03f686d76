// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/roomgrid/roombook/internal/model"
)

// Event types carried in BookingEvent.Type.
const (
	BookingCreated = "booking.created"
	BookingDeleted = "booking.deleted"
)

// QueueName is the durable queue both the publisher and the consumer
// declare. Using the same declaration on both sides keeps startup order
// irrelevant.
const QueueName = "booking.events"

// BookingEvent is published whenever a booking is created or deleted.
// It carries enough state for downstream consumers to log or notify
// without querying the primary database. Timestamps are RFC3339 UTC.
type BookingEvent struct {
	EventID   string  `json:"event_id"`
	Type      string  `json:"type"`
	BookingID uint64  `json:"booking_id"`
	RoomID    uint64  `json:"room_id"`
	UserID    *uint64 `json:"user_id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	EmittedAt string  `json:"emitted_at"`
}

// NewBookingEvent builds a BookingEvent of the given type from a
// persisted booking.
func NewBookingEvent(evType string, b *model.Booking) BookingEvent {
	return BookingEvent{
		EventID:   uuid.NewString(),
		Type:      evType,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartTime: b.StartTime.UTC().Format(time.RFC3339),
		EndTime:   b.EndTime.UTC().Format(time.RFC3339),
		EmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
