package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoimura/meeting-room-reservation/internal/model"
)

// RoomRepo provides CRUD operations for meeting rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// List returns rooms ordered by id, honoring skip/limit pagination.
func (r *RoomRepo) List(ctx context.Context, skip, limit int) ([]model.Room, error) {
	const q = `SELECT room_id, room_name, capacity FROM rooms ORDER BY room_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT room_id, room_name, capacity FROM rooms WHERE room_id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.Name, &rm.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// GetByIDTx is GetByID reading through an open transaction. Booking
// writes use it so the capacity they validate against cannot change
// underneath them before commit.
func (r *RoomRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	const q = `SELECT room_id, room_name, capacity FROM rooms WHERE room_id = ?`
	var rm model.Room
	err := tx.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.Name, &rm.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create inserts a new room and populates the generated id.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (room_name, capacity) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// Update replaces the mutable fields of a room. It returns
// ErrRoomNotFound when the id does not exist. Shrinking the capacity
// does not revalidate existing bookings.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	if _, err := r.GetByID(ctx, rm.ID); err != nil {
		return err
	}
	const q = `UPDATE rooms SET room_name = ?, capacity = ? WHERE room_id = ?`
	_, err := r.db.ExecContext(ctx, q, rm.Name, rm.Capacity, rm.ID)
	return err
}

// Delete removes a room by id and returns the deleted row, or
// ErrRoomNotFound when the id does not exist. Bookings referencing
// the room are left untouched.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) (*model.Room, error) {
	rm, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const q = `DELETE FROM rooms WHERE room_id = ?`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return nil, err
	}
	return rm, nil
}
