// Package booking holds the reservation rules applied whenever a
// booking is created or updated: headcount against room capacity,
// time ordering, operating hours, and interval overlap.
package booking

import "errors"

// ErrCapacityExceeded signals a headcount above the room's capacity.
var ErrCapacityExceeded = errors.New("booked number exceeds room capacity")

// ErrInvalidTimeRange signals a window whose end is not after its start.
var ErrInvalidTimeRange = errors.New("end time must be after start time")

// ErrOutsideHours signals a window outside the operating hours.
var ErrOutsideHours = errors.New("booking outside operating hours")

// ErrRoomConflict signals an overlap with an existing booking for the
// same room.
var ErrRoomConflict = errors.New("room already booked for that time")
