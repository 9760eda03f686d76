package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/roomgrid/roombook/internal/booking"
	"github.com/roomgrid/roombook/internal/config"
	"github.com/roomgrid/roombook/internal/middleware"
	"github.com/roomgrid/roombook/internal/queue"
	"github.com/roomgrid/roombook/internal/repository"
)

// EventPublisher publishes booking lifecycle events to the message
// broker.  A nil publisher disables events; publish failures never fail
// the request that triggered them.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// BookingHandler serves the booking endpoints: list, create, availability
// check and delete.  Creation goes through the store's atomic
// check-then-insert; the handler itself is stateless and holds no booking
// data between requests.
type BookingHandler struct {
	Store    BookingStore
	Events   EventPublisher
	Rdb      *redis.Client
	CacheCfg config.CacheConfig
	Log      *logrus.Logger

	validate *validator.Validate
}

// NewBookingHandler constructs a BookingHandler.  Store must be non-nil;
// Events and Rdb may be nil to disable eventing and cache eviction.
func NewBookingHandler(store BookingStore, events EventPublisher, rdb *redis.Client, cacheCfg config.CacheConfig, log *logrus.Logger) *BookingHandler {
	if store == nil {
		panic("nil store passed to NewBookingHandler")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingHandler{
		Store:    store,
		Events:   events,
		Rdb:      rdb,
		CacheCfg: cacheCfg,
		Log:      log,
		validate: validator.New(),
	}
}

// bookingResponse is the JSON shape of a single persisted booking.
type bookingResponse struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"room_id"`
	UserID    *uint64   `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /api/bookings.  It returns every booking joined with
// room and user display info, ordered by start time ascending.
func (h *BookingHandler) List(c echo.Context) error {
	details, err := h.Store.ListAll(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("list bookings failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, details)
}

// createBookingRequest is the payload for POST /api/bookings.  Times are
// RFC3339 strings.  user_id is honored only for anonymous callers; an
// authenticated principal always overrides it.
type createBookingRequest struct {
	RoomID    uint64  `json:"room_id" validate:"required"`
	UserID    *uint64 `json:"user_id"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Notes     *string `json:"notes"`
}

// Create handles POST /api/bookings.  The admission decision is made by
// the store inside one transaction: re-check overlap, insert only on
// zero conflicts.  Outcomes map to 201 (created), 400 (validation),
// 409 (slot taken) and 500 (store failure).
func (h *BookingHandler) Create(c echo.Context) error {
	var body createBookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id, start_time and end_time are required"})
	}
	start, err := time.Parse(time.RFC3339, body.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, body.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
	}

	// Authenticated identity wins over any client-supplied user id; the
	// payload value only survives for anonymous legacy callers.
	userID := body.UserID
	if p := getPrincipal(c); p != nil {
		userID = &p.UserID
	}

	ctx := c.Request().Context()
	b, err := h.Store.CreateBooking(ctx, body.RoomID, userID, start.UTC(), end.UTC(), body.Notes)
	switch {
	case errors.Is(err, repository.ErrInvalidInterval):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "This time slot is already booked"})
	case err != nil:
		h.Log.WithError(err).Error("create booking failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	h.flushCache(ctx)
	h.publish(queue.NewBookingEvent(queue.BookingCreated, b))

	return c.JSON(http.StatusCreated, bookingResponse{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	})
}

// CheckAvailability handles GET /api/bookings/check-availability.  The
// answer is advisory: it does not reserve the slot, and a create racing
// in after this check is still admitted or rejected by the transactional
// path alone.
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.QueryParam("room_id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_id"})
	}
	start, err := time.Parse(time.RFC3339, c.QueryParam("start_time"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end_time"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
	}
	if !booking.ValidRange(start, end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
	}
	n, err := h.Store.CountOverlapping(c.Request().Context(), roomID, start.UTC(), end.UTC())
	if err != nil {
		h.Log.WithError(err).Error("availability check failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check booking availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": n == 0})
}

// Delete handles DELETE /api/bookings/:id.  The booking must exist (404
// otherwise), and the caller must pass the authorization gate: owner,
// admin, or anyone when the booking is ownerless (legacy carve-out).
// 404 and 403 are deliberately distinct responses.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if err != nil {
		h.Log.WithError(err).Error("load booking for delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}

	if booking.CanDelete(getPrincipal(c), b.UserID) != booking.DeleteAllowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not have permission to delete this booking"})
	}

	removed, err := h.Store.DeleteByID(ctx, id)
	if err != nil {
		h.Log.WithError(err).Error("delete booking failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}
	if !removed {
		// Lost a race with another delete; the row is already gone.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	h.flushCache(ctx)
	h.publish(queue.NewBookingEvent(queue.BookingDeleted, b))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Booking deleted successfully"})
}

// flushCache evicts cached GET responses after a mutation.  Best effort:
// entries expire on their own TTL anyway.
func (h *BookingHandler) flushCache(ctx context.Context) {
	if err := middleware.FlushCache(ctx, h.Rdb, h.CacheCfg); err != nil {
		h.Log.WithError(err).Warn("cache eviction failed")
	}
}

// publish sends a booking event without blocking the response on broker
// availability.  The broker call carries its own timeout.
func (h *BookingHandler) publish(ev queue.BookingEvent) {
	if h.Events == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Events.PublishBookingEvent(ctx, ev); err != nil {
			h.Log.WithError(err).WithField("event", ev.Type).Warn("publish booking event failed")
		}
	}()
}
