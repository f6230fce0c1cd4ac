package seed_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
	"github.com/aoimura/meeting-room-reservation/internal/seed"
)

func newSeedDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE users (
			user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL
		)`,
		`CREATE TABLE rooms (
			room_id   INTEGER PRIMARY KEY AUTOINCREMENT,
			room_name TEXT NOT NULL,
			capacity  INTEGER NOT NULL
		)`,
		`CREATE TABLE bookings (
			booking_id     INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id        INTEGER NOT NULL,
			room_id        INTEGER NOT NULL,
			booked_num     INTEGER NOT NULL,
			start_datetime DATETIME NOT NULL,
			end_datetime   DATETIME NOT NULL
		)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestSeedPopulatesEmptyStore(t *testing.T) {
	db := newSeedDB(t)
	ctx := context.Background()
	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	require.NoError(t, seed.Run(ctx, db, users, rooms, bookings, 9))

	assert.Equal(t, 1, countRows(t, db, "users"))
	assert.Equal(t, 1, countRows(t, db, "rooms"))
	assert.Equal(t, 1, countRows(t, db, "bookings"))

	got, err := bookings.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].BookedNum)
	assert.Equal(t, 9, got[0].StartsAt.Hour())
	assert.Equal(t, 10, got[0].EndsAt.Hour())
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newSeedDB(t)
	ctx := context.Background()
	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	require.NoError(t, seed.Run(ctx, db, users, rooms, bookings, 9))
	require.NoError(t, seed.Run(ctx, db, users, rooms, bookings, 9))

	assert.Equal(t, 1, countRows(t, db, "users"))
	assert.Equal(t, 1, countRows(t, db, "rooms"))
	assert.Equal(t, 1, countRows(t, db, "bookings"))
}

func TestSeedSkipsPartiallyPopulatedStore(t *testing.T) {
	db := newSeedDB(t)
	ctx := context.Background()
	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	// One pre-existing row in any table disables seeding entirely.
	require.NoError(t, users.Create(ctx, &model.User{Username: "existing"}))
	require.NoError(t, seed.Run(ctx, db, users, rooms, bookings, 9))

	assert.Equal(t, 1, countRows(t, db, "users"))
	assert.Equal(t, 0, countRows(t, db, "rooms"))
	assert.Equal(t, 0, countRows(t, db, "bookings"))
}
