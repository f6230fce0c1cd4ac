package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
)

func hour(h int) time.Time {
	return time.Date(2026, time.March, 10, h, 0, 0, 0, time.UTC)
}

func mustBooking(t *testing.T, r *repository.BookingRepo, roomID uint64, start, end time.Time) *model.Booking {
	t.Helper()
	b := &model.Booking{UserID: 1, RoomID: roomID, BookedNum: 2, StartsAt: start, EndsAt: end}
	require.NoError(t, r.Create(context.Background(), b))
	return b
}

func TestBookingRepoCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewBookingRepo(db)
	ctx := context.Background()

	b := mustBooking(t, r, 1, hour(10), hour(11))
	require.NotZero(t, b.ID)

	got, err := r.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.RoomID, got.RoomID)
	assert.True(t, got.StartsAt.Equal(hour(10)), "got %v", got.StartsAt)
	assert.True(t, got.EndsAt.Equal(hour(11)), "got %v", got.EndsAt)

	_, err = r.GetByID(ctx, b.ID+1)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestBookingRepoCountOverlapTx(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewBookingRepo(db)
	ctx := context.Background()

	existing := mustBooking(t, r, 1, hour(10), hour(11))
	mustBooking(t, r, 2, hour(10), hour(11)) // other room, never counts

	tests := []struct {
		name       string
		start, end time.Time
		exclude    uint64
		want       int
	}{
		{"same window", hour(10), hour(11), 0, 1},
		{"starts inside", hour(10).Add(30 * time.Minute), hour(11).Add(30 * time.Minute), 0, 1},
		{"ends inside", hour(9).Add(30 * time.Minute), hour(10).Add(30 * time.Minute), 0, 1},
		{"contains existing", hour(9), hour(12), 0, 1},
		{"back to back after", hour(11), hour(12), 0, 0},
		{"back to back before", hour(9), hour(10), 0, 0},
		{"disjoint", hour(13), hour(14), 0, 0},
		{"excluded from its own window", hour(10), hour(11), existing.ID, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
			require.NoError(t, err)
			defer tx.Rollback()

			n, err := r.CountOverlapTx(ctx, tx, 1, tc.start, tc.end, tc.exclude)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestBookingRepoUpdateTx(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewBookingRepo(db)
	ctx := context.Background()

	b := mustBooking(t, r, 1, hour(10), hour(11))

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	require.NoError(t, err)

	b.RoomID = 3
	b.BookedNum = 7
	b.StartsAt = hour(14)
	b.EndsAt = hour(15)
	require.NoError(t, r.UpdateTx(ctx, tx, b))
	require.NoError(t, tx.Commit())

	got, err := r.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.RoomID)
	assert.Equal(t, 7, got.BookedNum)
	assert.True(t, got.StartsAt.Equal(hour(14)))
}

func TestBookingRepoListPagination(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewBookingRepo(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		mustBooking(t, r, 1, hour(9+i), hour(10+i))
	}

	all, err := r.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 4)

	page, err := r.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, page[0].StartsAt.Equal(hour(11)))
}

func TestBookingRepoDelete(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewBookingRepo(db)
	ctx := context.Background()

	b := mustBooking(t, r, 1, hour(10), hour(11))

	deleted, err := r.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, deleted.ID)

	_, err = r.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	_, err = r.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}
