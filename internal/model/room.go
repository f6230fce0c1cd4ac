package model

// Room represents a meeting room as stored in the `rooms` table.
// Capacity bounds how many people a single booking may bring; the
// check happens when bookings are created or updated, not here.
//
// Fields:
//  ID       – primary key identifier (rooms.room_id).
//  Name     – display name of the room.
//  Capacity – maximum headcount per booking, always >= 1.
type Room struct {
	ID       uint64 `json:"room_id"`   // rooms.room_id
	Name     string `json:"room_name"` // rooms.room_name
	Capacity int    `json:"capacity"`  // rooms.capacity
}
