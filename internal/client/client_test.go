package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoimura/meeting-room-reservation/internal/client"
)

func TestClientDecodesSuccessBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			if r.Method == http.MethodPost {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "alice", body["username"])
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"user_id":1,"username":"alice"}`))
				return
			}
			w.Write([]byte(`[{"user_id":1,"username":"alice"},{"user_id":2,"username":"bob"}]`))
		case "/rooms":
			w.Write([]byte(`[{"room_id":1,"room_name":"Room A","capacity":10}]`))
		case "/bookings":
			w.Write([]byte(`[{"booking_id":1,"user_id":1,"room_id":1,"booked_num":5,` +
				`"start_datetime":"2026-03-10T10:00:00Z","end_datetime":"2026-03-10T11:00:00Z"}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	ctx := context.Background()

	users, err := c.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)

	u, err := c.CreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)

	rooms, err := c.Rooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 10, rooms[0].Capacity)

	bookings, err := c.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].StartsAt.Equal(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)))
}

func TestClientSendsBookingTimestampsAsRFC3339(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"booking_id":7,"user_id":1,"room_id":2,"booked_num":3,` +
			`"start_datetime":"2026-03-10T10:00:00Z","end_datetime":"2026-03-10T11:00:00Z"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	b, err := c.CreateBooking(context.Background(), client.BookingParams{
		UserID:    1,
		RoomID:    2,
		BookedNum: 3,
		StartsAt:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.ID)
	assert.Equal(t, "2026-03-10T10:00:00Z", got["start_datetime"])
	assert.Equal(t, "2026-03-10T11:00:00Z", got["end_datetime"])
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"already booked for that time","code":"room_conflict"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.CreateBooking(context.Background(), client.BookingParams{
		UserID: 1, RoomID: 1, BookedNum: 1,
		StartsAt: time.Now(), EndsAt: time.Now().Add(time.Hour),
	})
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "room_conflict", apiErr.Code)
	assert.Equal(t, "already booked for that time", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "room_conflict")
}

func TestClientHandlesNonJSONFailureBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Users(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Code)
}
