package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomgrid/roombook/internal/booking"
	"github.com/roomgrid/roombook/internal/model"
	"github.com/roomgrid/roombook/internal/repository"
)

// BookingStore is the persistence contract the booking handlers depend
// on.  *repository.BookingRepo is the production implementation; tests
// substitute an in-memory store that honors the same atomicity contract
// (CreateBooking is a single atomic check-then-insert per room).
type BookingStore interface {
	CreateBooking(ctx context.Context, roomID uint64, userID *uint64, start, end time.Time, notes *string) (*model.Booking, error)
	CountOverlapping(ctx context.Context, roomID uint64, start, end time.Time) (int, error)
	ListAll(ctx context.Context) ([]repository.BookingDetail, error)
	FindByID(ctx context.Context, id uint64) (*model.Booking, error)
	DeleteByID(ctx context.Context, id uint64) (bool, error)
}

// RoomStore is the read-only contract for room reference data.
type RoomStore interface {
	List(ctx context.Context) ([]model.Room, error)
}

// getPrincipal reads the authenticated identity placed in the context by
// the OptionalAuth middleware.  It returns nil for anonymous requests.
func getPrincipal(c echo.Context) *booking.Principal {
	v := c.Get("user_id")
	id, ok := v.(uint64)
	if !ok || id == 0 {
		return nil
	}
	admin, _ := c.Get("is_admin").(bool)
	return &booking.Principal{UserID: id, Admin: admin}
}
