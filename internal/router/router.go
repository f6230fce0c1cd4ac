package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/aoimura/meeting-room-reservation/internal/handler"
)

// Register wires every API route onto the provided Echo instance. The
// API carries no authentication layer; the web UI is the only
// expected caller, and all gating happens there.
func Register(e *echo.Echo, users *handler.UserHandler, rooms *handler.RoomHandler, bookings *handler.BookingHandler) {
	// Liveness probe for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)

	// Users: list, register, rename, delete.
	e.GET("/users", users.List)
	e.POST("/users", users.Create)
	e.PUT("/users/:id", users.Update)
	e.DELETE("/users/:id", users.Delete)

	// Rooms: list, register, update, delete.
	e.GET("/rooms", rooms.List)
	e.POST("/rooms", rooms.Create)
	e.PUT("/rooms/:id", rooms.Update)
	e.DELETE("/rooms/:id", rooms.Delete)

	// Bookings: list, reserve, reschedule, cancel. Create and update
	// enforce the conflict rules; see handler.BookingHandler.
	e.GET("/bookings", bookings.List)
	e.POST("/bookings", bookings.Create)
	e.PUT("/bookings/:id", bookings.Update)
	e.DELETE("/bookings/:id", bookings.Delete)
}
