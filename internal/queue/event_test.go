package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/roomgrid/roombook/internal/model"
)

func TestNewBookingEvent(t *testing.T) {
	uid := uint64(7)
	b := &model.Booking{
		ID:        12,
		RoomID:    3,
		UserID:    &uid,
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}

	ev := NewBookingEvent(BookingCreated, b)
	if ev.Type != BookingCreated {
		t.Errorf("type = %q, want %q", ev.Type, BookingCreated)
	}
	if ev.EventID == "" {
		t.Error("event id not assigned")
	}
	if ev.BookingID != 12 || ev.RoomID != 3 {
		t.Errorf("ids not carried over: %+v", ev)
	}
	if ev.UserID == nil || *ev.UserID != 7 {
		t.Errorf("user id = %v, want 7", ev.UserID)
	}
	if ev.StartTime != "2026-03-10T09:00:00Z" {
		t.Errorf("start time = %q", ev.StartTime)
	}
	if _, err := time.Parse(time.RFC3339, ev.EmittedAt); err != nil {
		t.Errorf("emitted_at not RFC3339: %v", err)
	}

	// Distinct events never share an id.
	if NewBookingEvent(BookingDeleted, b).EventID == ev.EventID {
		t.Error("event ids collided")
	}
}

func TestBookingEventRoundTripsAnonymousOwner(t *testing.T) {
	b := &model.Booking{ID: 1, RoomID: 1,
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(NewBookingEvent(BookingDeleted, b))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got BookingEvent
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.UserID != nil {
		t.Errorf("anonymous owner decoded as %v", *got.UserID)
	}
	if got.Type != BookingDeleted {
		t.Errorf("type = %q", got.Type)
	}
}
