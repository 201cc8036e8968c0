package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/event-hub/internal/model"
	"github.com/iliyamo/event-hub/internal/utils"
)

// UserRepo provides persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,username,password_hash,location,picture,created_at"

// UserUpdate carries the optional fields of a partial user update.
// A nil pointer means "leave the column untouched"; there is no way
// to null a column through this type. Password is the plain text
// replacement and is re-hashed before it reaches the database.
type UserUpdate struct {
	Name     *string
	Username *string
	Password *string
	Location *string
	Picture  *string
}

// Create hashes the password and inserts a new user, returning the
// stored row. A taken username surfaces as ErrUsernameExists via the
// uniq_username constraint rather than a prior existence check.
func (r *UserRepo) Create(ctx context.Context, name, username, password, location string, picture *string, cost int) (model.User, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, name, username, password_hash, location, picture) VALUES (?,?,?,?,?,?)",
		id, name, username, hash, location, picture)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.User{}, ErrUsernameExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByUsername fetches a user by username for login and profile
// lookups.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)))
}

// GetAll returns every user restricted to the fields that are safe to
// expose publicly. The password hash is never selected.
func (r *UserRepo) GetAll(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,username,location FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.PublicUser, 0)
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Location); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies the non-nil fields of upd to the user row. Absent
// fields keep their current values. An update with no fields set is a
// no-op that still returns the current row. The caller is responsible
// for the ownership check; this method only touches the given id.
func (r *UserRepo) Update(ctx context.Context, id string, upd UserUpdate, cost int) (model.User, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if upd.Name != nil {
		set = append(set, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Username != nil {
		set = append(set, "username=?")
		args = append(args, strings.TrimSpace(*upd.Username))
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, cost)
		if err != nil {
			return model.User{}, err
		}
		set = append(set, "password_hash=?")
		args = append(args, hash)
	}
	if upd.Location != nil {
		set = append(set, "location=?")
		args = append(args, *upd.Location)
	}
	if upd.Picture != nil {
		set = append(set, "picture=?")
		args = append(args, *upd.Picture)
	}
	if len(set) > 0 {
		args = append(args, id)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
		if err != nil {
			if isDuplicateEntry(err) {
				return model.User{}, ErrUsernameExists
			}
			return model.User{}, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			// The row may exist with identical values; confirm below.
			if _, err := r.GetByID(ctx, id); err != nil {
				return model.User{}, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user row. The database cascade removes the
// user's events and every booking, review and favorite referencing
// either the user or those events. Returns sql.ErrNoRows when the id
// does not exist.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var picture sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Location, &picture, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	if picture.Valid {
		p := picture.String
		u.Picture = &p
	}
	return u, nil
}
