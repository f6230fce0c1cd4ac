// Package seed inserts the initial sample records on first startup.
package seed

import (
	"context"
	"database/sql"
	"time"

	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
)

// Run inserts one sample user, room and booking, but only when the
// store is entirely empty: if any users, rooms or bookings exist the
// routine does nothing. Running it repeatedly therefore leaves
// exactly one seed record per table. The sample booking occupies the
// sample room for one hour starting at openHour today.
func Run(ctx context.Context, db *sql.DB, users *repository.UserRepo, rooms *repository.RoomRepo, bookings *repository.BookingRepo, openHour int) error {
	empty, err := storeEmpty(ctx, db)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	u := &model.User{Username: "sample user"}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	rm := &model.Room{Name: "Room A", Capacity: 10}
	if err := rooms.Create(ctx, rm); err != nil {
		return err
	}
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), openHour, 0, 0, 0, time.UTC)
	b := &model.Booking{
		UserID:    u.ID,
		RoomID:    rm.ID,
		BookedNum: 5,
		StartsAt:  start,
		EndsAt:    start.Add(time.Hour),
	}
	return bookings.Create(ctx, b)
}

// storeEmpty reports whether all three tables have zero rows.
func storeEmpty(ctx context.Context, db *sql.DB) (bool, error) {
	for _, table := range []string{"users", "rooms", "bookings"} {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}
