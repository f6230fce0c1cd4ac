package model

import "time"

// Booking records a reservation of one room by one user for a
// half-open time interval [StartsAt, EndsAt). Two bookings for the
// same room must never overlap; a booking that starts exactly when
// another ends is allowed. Timestamps are stored in UTC and travel
// as RFC3339 strings on the wire.
//
// Fields:
//  ID        – primary key identifier (bookings.booking_id).
//  UserID    – user who made the booking.
//  RoomID    – room being reserved.
//  BookedNum – headcount, must not exceed the room's capacity.
//  StartsAt  – start of the reserved window.
//  EndsAt    – end of the reserved window, strictly after StartsAt.
type Booking struct {
	ID        uint64    `json:"booking_id"`     // bookings.booking_id
	UserID    uint64    `json:"user_id"`        // bookings.user_id
	RoomID    uint64    `json:"room_id"`        // bookings.room_id
	BookedNum int       `json:"booked_num"`     // bookings.booked_num
	StartsAt  time.Time `json:"start_datetime"` // bookings.start_datetime
	EndsAt    time.Time `json:"end_datetime"`   // bookings.end_datetime
}
