package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aoimura/meeting-room-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings plus the overlap
// count query backing the conflict check. Writes that must observe
// the no-double-booking invariant go through the Tx variants inside a
// serializable transaction owned by the caller; plain methods serve
// reads and the delete path, where no invariant is at stake.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `booking_id, user_id, room_id, booked_num, start_datetime, end_datetime`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.BookedNum, &b.StartsAt, &b.EndsAt)
}

// List returns bookings ordered by id, honoring skip/limit pagination.
func (r *BookingRepo) List(ctx context.Context, skip, limit int) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY booking_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = ?`
	var b model.Booking
	err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByIDTx is GetByID reading through an open transaction.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = ?`
	var b model.Booking
	err := scanBooking(tx.QueryRowContext(ctx, q, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CountOverlapTx counts bookings for the room whose interval
// intersects [start, end) under strict inequality on both bounds, so
// a booking ending exactly when another starts never counts as a
// conflict. excludeID skips one booking (the one being updated);
// pass zero on create.
func (r *BookingRepo) CountOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, start, end time.Time, excludeID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE room_id = ?
	             AND start_datetime < ?
	             AND end_datetime > ?
	             AND booking_id <> ?`
	var n int
	if err := tx.QueryRowContext(ctx, q, roomID, end, start, excludeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts a booking outside any transaction. Only the seed
// routine uses it; API writes go through CreateTx so the conflict
// check and the insert commit atomically.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, room_id, booked_num, start_datetime, end_datetime) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.UserID, b.RoomID, b.BookedNum, b.StartsAt, b.EndsAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// CreateTx inserts a booking within the scope of an existing
// transaction and populates the generated id. The caller must commit
// or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, room_id, booked_num, start_datetime, end_datetime) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.RoomID, b.BookedNum, b.StartsAt, b.EndsAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// UpdateTx replaces all mutable fields of a booking within an open
// transaction. The caller has already confirmed existence via
// GetByIDTx, so a zero rows-affected result here only means the
// values were unchanged.
func (r *BookingRepo) UpdateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `UPDATE bookings SET user_id = ?, room_id = ?, booked_num = ?, start_datetime = ?, end_datetime = ? WHERE booking_id = ?`
	_, err := tx.ExecContext(ctx, q, b.UserID, b.RoomID, b.BookedNum, b.StartsAt, b.EndsAt, b.ID)
	return err
}

// Delete removes a booking by id and returns the deleted row, or
// ErrBookingNotFound when the id does not exist.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const q = `DELETE FROM bookings WHERE booking_id = ?`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return nil, err
	}
	return b, nil
}
