// Package repository implements data access for users, rooms and
// bookings over database/sql. Sentinel errors defined here let
// handlers distinguish failure scenarios without inspecting driver
// errors; each maps to a 404 in the HTTP layer.
package repository

import "errors"

// ErrUserNotFound is returned when a user id does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrRoomNotFound is returned when a room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")
