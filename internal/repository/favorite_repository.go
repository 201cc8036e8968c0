package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/event-hub/internal/model"
)

// FavoriteRepo provides persistence for the favorites table. Like
// bookings, favorites are keyed on the (user_id, event_id) pair for
// every mutation.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// Create marks an event as a favorite of the user. Duplicate pairs
// are rejected by uniq_favorite; the insert-and-catch pattern means
// two concurrent calls cannot both succeed.
func (r *FavoriteRepo) Create(ctx context.Context, userID, eventID string) (model.Favorite, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO favorites (id, user_id, event_id) VALUES (?,?,?)",
		id, userID, eventID)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.Favorite{}, ErrDuplicateFavorite
		}
		if isForeignKeyViolation(err) {
			return model.Favorite{}, sql.ErrNoRows
		}
		return model.Favorite{}, err
	}
	var f model.Favorite
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,event_id,created_at FROM favorites WHERE id=?", id).
		Scan(&f.ID, &f.UserID, &f.EventID, &f.CreatedAt)
	return f, err
}

// ListByUser returns the events the user has favorited, joined
// against the events table.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT e.id,e.user_id,e.event_name,e.description,e.event_type,e.address,
		        e.price,e.capacity,e.date,e.start_time,e.end_time,e.picture,e.created_at
		 FROM favorites f
		 JOIN events e ON e.id = f.event_id
		 WHERE f.user_id = ?
		 ORDER BY e.date ASC`, userID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// Delete removes the user's favorite for an event. Returns
// sql.ErrNoRows when the pair has no favorite.
func (r *FavoriteRepo) Delete(ctx context.Context, userID, eventID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id=? AND event_id=?", userID, eventID)
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
