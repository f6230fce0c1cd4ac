package repository_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// newTestDB opens an in-memory sqlite database with the reservation
// schema. The pool is pinned to one connection because every :memory:
// connection is its own database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
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
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}
	return db
}
