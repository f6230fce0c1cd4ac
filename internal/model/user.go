package model

// User represents a row in the `users` table. Users are created
// through registration and referenced by bookings via their ID.
// The json tags follow the wire names used by the HTTP API.
//
// Fields:
//  ID       – primary key identifier (users.user_id).
//  Username – display name shown in selection lists.
type User struct {
	ID       uint64 `json:"user_id"`  // users.user_id
	Username string `json:"username"` // users.username
}
