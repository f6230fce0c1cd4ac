// Package client is a typed HTTP client for the reservation API,
// used by the web UI. Calls are synchronous request/response; the
// caller's context carries any deadline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aoimura/meeting-room-reservation/internal/model"
)

// APIError is a non-2xx response decoded from the API's failure body.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable error kind, e.g. "room_conflict"
	Message string // human-readable message
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client talks to one API base URL.
type Client struct {
	base string
	hc   *http.Client
}

// New returns a Client for the given base URL, e.g. "http://api:8000".
func New(base string) *Client {
	return &Client{base: base, hc: &http.Client{Timeout: 10 * time.Second}}
}

// do issues a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil. Non-2xx responses come back
// as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var failure struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil {
			apiErr.Code = failure.Code
			apiErr.Message = failure.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Users returns all users.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodPost, "/users", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser renames a user.
func (c *Client) UpdateUser(ctx context.Context, id uint64, username string) (*model.User, error) {
	var u model.User
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser deletes a user and returns the deleted row.
func (c *Client) DeleteUser(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Rooms returns all rooms.
func (c *Client) Rooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom registers a new room.
func (c *Client) CreateRoom(ctx context.Context, name string, capacity int) (*model.Room, error) {
	var rm model.Room
	body := map[string]any{"room_name": name, "capacity": capacity}
	if err := c.do(ctx, http.MethodPost, "/rooms", body, &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// UpdateRoom replaces a room's name and capacity.
func (c *Client) UpdateRoom(ctx context.Context, id uint64, name string, capacity int) (*model.Room, error) {
	var rm model.Room
	body := map[string]any{"room_name": name, "capacity": capacity}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/rooms/%d", id), body, &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// DeleteRoom deletes a room and returns the deleted row.
func (c *Client) DeleteRoom(ctx context.Context, id uint64) (*model.Room, error) {
	var rm model.Room
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/rooms/%d", id), nil, &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// BookingParams carries the fields of a booking create or update.
type BookingParams struct {
	UserID    uint64
	RoomID    uint64
	BookedNum int
	StartsAt  time.Time
	EndsAt    time.Time
}

func (p BookingParams) body() map[string]any {
	return map[string]any{
		"user_id":        p.UserID,
		"room_id":        p.RoomID,
		"booked_num":     p.BookedNum,
		"start_datetime": p.StartsAt.Format(time.RFC3339),
		"end_datetime":   p.EndsAt.Format(time.RFC3339),
	}
}

// Bookings returns all bookings.
func (c *Client) Bookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking reserves a room. A conflicting window surfaces as an
// *APIError with code "room_conflict".
func (c *Client) CreateBooking(ctx context.Context, p BookingParams) (*model.Booking, error) {
	var b model.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", p.body(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBooking replaces a booking's fields.
func (c *Client) UpdateBooking(ctx context.Context, id uint64, p BookingParams) (*model.Booking, error) {
	var b model.Booking
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), p.body(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBooking cancels a booking and returns the deleted row.
func (c *Client) DeleteBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
