// Package handler contains the Echo handlers for the reservation
// API. Handlers bind and validate payloads, call into the repository
// layer, and translate sentinel errors into HTTP responses. Unlike
// the usual single-status convention of small CRUD tools, failures
// carry distinct statuses and a machine-readable code: 404 for
// missing ids, 409 for booking conflicts, 422 for rule violations.
package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Error codes returned in the "code" field of failure responses.
const (
	CodeInvalidPayload   = "invalid_payload"
	CodeUserNotFound     = "user_not_found"
	CodeRoomNotFound     = "room_not_found"
	CodeBookingNotFound  = "booking_not_found"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeInvalidTimeOrder = "invalid_time_order"
	CodeOutsideHours     = "outside_hours"
	CodeRoomConflict     = "room_conflict"
	CodeInternal         = "internal_error"
)

// jsonError writes the uniform failure body.
func jsonError(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, echo.Map{"error": msg, "code": code})
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// pagination reads the skip/limit query parameters, defaulting to
// 0/100. Negative or malformed values fall back to the defaults.
func pagination(c echo.Context) (skip, limit int) {
	skip, limit = 0, 100
	if v := c.QueryParam("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}
	return skip, limit
}

// timestampLayouts are accepted on the wire. RFC3339 is canonical;
// the zoneless form is kept because form-driven clients send plain
// ISO-8601 local timestamps.
var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// parseTimestamp parses an ISO-8601 string, treating zoneless input
// as UTC.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// Health is a liveness probe for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
