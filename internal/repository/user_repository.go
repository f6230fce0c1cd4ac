package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aoimura/meeting-room-reservation/internal/model"
)

// UserRepo provides CRUD operations for users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *UserRepo) DB() *sql.DB { return r.db }

// List returns users ordered by id, honoring skip/limit pagination.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	const q = `SELECT user_id, username FROM users ORDER BY user_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID returns a single user or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT user_id, username FROM users WHERE user_id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and populates the generated id.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (username) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, u.Username)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update replaces the mutable fields of a user. It returns
// ErrUserNotFound when the id does not exist.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	if _, err := r.GetByID(ctx, u.ID); err != nil {
		return err
	}
	const q = `UPDATE users SET username = ? WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, q, u.Username, u.ID)
	return err
}

// Delete removes a user by id and returns the deleted row, or
// ErrUserNotFound when the id does not exist. Bookings referencing
// the user are left untouched.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (*model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	const q = `DELETE FROM users WHERE user_id = ?`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return nil, err
	}
	return u, nil
}

// ExistsTx reports whether a user exists, reading through the given
// transaction so booking writes see a consistent snapshot.
func (r *UserRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = ?)`
	var ok bool
	if err := tx.QueryRowContext(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
