package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoimura/meeting-room-reservation/internal/model"
	"github.com/aoimura/meeting-room-reservation/internal/repository"
)

func TestUserRepoCRUD(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{Username: "alice"}
	require.NoError(t, r.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	u.Username = "alice-renamed"
	require.NoError(t, r.Update(ctx, u))
	got, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", got.Username)

	deleted, err := r.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", deleted.Username)

	_, err = r.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepoNotFound(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewUserRepo(db)
	ctx := context.Background()

	_, err := r.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = r.Update(ctx, &model.User{ID: 42, Username: "ghost"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = r.Delete(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepoListPagination(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewUserRepo(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, r.Create(ctx, &model.User{Username: fmt.Sprintf("user-%d", i)}))
	}

	all, err := r.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "user-1", all[0].Username)

	page, err := r.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "user-3", page[0].Username)
	assert.Equal(t, "user-4", page[1].Username)

	empty, err := r.List(ctx, 10, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepoExistsTx(t *testing.T) {
	db := newTestDB(t)
	r := repository.NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{Username: "bob"}
	require.NoError(t, r.Create(ctx, u))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	ok, err := r.ExistsTx(ctx, tx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ExistsTx(ctx, tx, u.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}
