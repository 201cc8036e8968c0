package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/event-hub/internal/model"
)

// BookingRepo provides persistence for the bookings table. A booking
// is always private to the user who created it: every read and delete
// is keyed on the (user_id, event_id) pair, so there is no separate
// ownership check to get wrong.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Create books an event for a user. The insert is attempted directly
// and the uniq_booking constraint resolves duplicate attempts,
// including two concurrent calls for the same pair. Booking a
// nonexistent event trips the foreign key and reads as sql.ErrNoRows.
func (r *BookingRepo) Create(ctx context.Context, userID, eventID string) (model.Booking, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (id, user_id, event_id) VALUES (?,?,?)",
		id, userID, eventID)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.Booking{}, ErrDuplicateBooking
		}
		if isForeignKeyViolation(err) {
			return model.Booking{}, sql.ErrNoRows
		}
		return model.Booking{}, err
	}
	var b model.Booking
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,event_id,created_at FROM bookings WHERE id=?", id).
		Scan(&b.ID, &b.UserID, &b.EventID, &b.CreatedAt)
	return b, err
}

// ListByUser returns the events the user has booked, joined against
// the events table so clients get the full event rows rather than
// bare booking ids.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT e.id,e.user_id,e.event_name,e.description,e.event_type,e.address,
		        e.price,e.capacity,e.date,e.start_time,e.end_time,e.picture,e.created_at
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 WHERE b.user_id = ?
		 ORDER BY e.date ASC`, userID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// Delete cancels the user's booking for an event. Returns
// sql.ErrNoRows when no booking exists for the pair, which also
// covers attempts to cancel someone else's booking.
func (r *BookingRepo) Delete(ctx context.Context, userID, eventID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM bookings WHERE user_id=? AND event_id=?", userID, eventID)
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
