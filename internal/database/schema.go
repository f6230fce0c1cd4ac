package database

import (
	"context"
	"database/sql"
)

// schemaStatements is the authoritative DDL for the three tables the
// service owns. EnsureSchema replays it on startup so a fresh database
// becomes usable without a separate migration step; deployments that
// manage schema out-of-band can use cmd/migrate instead, which applies
// the same statements from the migrations directory.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(64) NOT NULL,
		PRIMARY KEY (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		room_id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		room_name VARCHAR(64) NOT NULL,
		capacity  INT NOT NULL,
		PRIMARY KEY (room_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id     BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id        BIGINT UNSIGNED NOT NULL,
		room_id        BIGINT UNSIGNED NOT NULL,
		booked_num     INT NOT NULL,
		start_datetime DATETIME NOT NULL,
		end_datetime   DATETIME NOT NULL,
		PRIMARY KEY (booking_id),
		KEY idx_bookings_room_window (room_id, start_datetime, end_datetime)
	)`,
	// user_id and room_id are checked against their tables when a
	// booking is written, but carry no enforced FOREIGN KEY: deleting
	// a user or room leaves its bookings dangling rather than failing
	// or cascading.
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
