package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/roomgrid/roombook/internal/booking"
	"github.com/roomgrid/roombook/internal/model"
)

// BookingRepo provides data access to the bookings table, including the
// admission path: the conflict-checked insert that upholds the per-room
// no-overlap invariant.  All timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// overlapCond matches bookings on roomID whose half-open interval
// intersects [start, end).  Touching intervals do not match: a booking
// ending exactly at `start` or starting exactly at `end` is not a
// conflict.  This is the SQL form of booking.Overlaps.
const overlapCond = `room_id = ? AND ? < end_time AND ? > start_time`

// CountOverlapping returns the number of accepted bookings for roomID
// whose interval intersects [start, end).  It is a pure read: the
// availability endpoint uses it directly, and its result is advisory
// only, since a later create re-checks inside a locked transaction.
func (r *BookingRepo) CountOverlapping(ctx context.Context, roomID uint64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE ` + overlapCond
	var n int
	if err := r.db.QueryRowContext(ctx, q, roomID, start, end).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// countOverlappingTx is the transactional variant used inside the
// admission path, after the room row has been locked.
func (r *BookingRepo) countOverlappingTx(ctx context.Context, tx *sql.Tx, roomID uint64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE ` + overlapCond
	var n int
	if err := tx.QueryRowContext(ctx, q, roomID, start, end).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CreateBooking admits a new booking for a room.  The overlap check and
// the insert run in a single transaction that first locks the room's row
// with SELECT ... FOR UPDATE, so two concurrent creates for the same room
// serialize: the loser re-runs its overlap count against the winner's
// committed row and observes the conflict.  Creates on different rooms do
// not contend.
//
// Returned errors:
//   - ErrInvalidInterval when start is not strictly before end
//   - ErrRoomNotFound when the room row does not exist
//   - ErrConflict when the interval overlaps an accepted booking
//
// userID is nil for anonymous creates (legacy path).  On success the
// persisted booking is returned with its server-assigned id and
// creation timestamp.
func (r *BookingRepo) CreateBooking(ctx context.Context, roomID uint64, userID *uint64, start, end time.Time, notes *string) (*model.Booking, error) {
	if !booking.ValidRange(start, end) {
		return nil, ErrInvalidInterval
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the room row.  This both verifies the room exists and gives
	// the check-then-insert below exclusivity per room.
	var lockedID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	n, err := r.countOverlappingTx(ctx, tx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrConflict
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (room_id, user_id, start_time, end_time, notes) VALUES (?, ?, ?, ?, ?)`,
		roomID, userID, start, end, notes,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Query back the full row to populate the creation timestamp.
	b := &model.Booking{}
	var uid sql.NullInt64
	var nts sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT id, room_id, user_id, start_time, end_time, notes, created_at FROM bookings WHERE id = ?`,
		id,
	).Scan(&b.ID, &b.RoomID, &uid, &b.StartTime, &b.EndTime, &nts, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if uid.Valid {
		u := uint64(uid.Int64)
		b.UserID = &u
	}
	if nts.Valid {
		s := nts.String
		b.Notes = &s
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// BookingDetail is a booking joined with its room name and, when the
// booking has an owner that still exists, the owner's display info.
// It is the row shape returned by ListAll for the calendar view.
type BookingDetail struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"room_id"`
	RoomName  string    `json:"room_name"`
	UserID    *uint64   `json:"user_id"`
	UserEmail *string   `json:"user_email"`
	UserName  *string   `json:"user_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAll returns every booking joined with its room name and user
// display info, ordered by start time ascending.  The user join is a
// LEFT JOIN: bookings made anonymously or by since-deleted users still
// appear, with null user fields.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.room_id, r.name, b.user_id, u.email, u.name,
	                  b.start_time, b.end_time, b.notes, b.created_at
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           LEFT JOIN users u ON u.id = b.user_id
	           ORDER BY b.start_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var uid sql.NullInt64
		var email, uname, notes sql.NullString
		if err := rows.Scan(
			&d.ID, &d.RoomID, &d.RoomName, &uid, &email, &uname,
			&d.StartTime, &d.EndTime, &notes, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		if uid.Valid {
			u := uint64(uid.Int64)
			d.UserID = &u
		}
		if email.Valid {
			e := email.String
			d.UserEmail = &e
		}
		if uname.Valid {
			n := uname.String
			d.UserName = &n
		}
		if notes.Valid {
			n := notes.String
			d.Notes = &n
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// FindByID returns a single booking.  ErrBookingNotFound is returned
// when no booking with the given id exists.
func (r *BookingRepo) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, room_id, user_id, start_time, end_time, notes, created_at
	           FROM bookings WHERE id = ?`
	b := &model.Booking{}
	var uid sql.NullInt64
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.RoomID, &uid, &b.StartTime, &b.EndTime, &notes, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if uid.Valid {
		u := uint64(uid.Int64)
		b.UserID = &u
	}
	if notes.Valid {
		s := notes.String
		b.Notes = &s
	}
	return b, nil
}

// DeleteByID removes a booking by id.  It reports whether a row was
// actually removed; deleting an id that is already gone is not an error,
// so a delete that loses a race simply observes removed == false.
func (r *BookingRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
