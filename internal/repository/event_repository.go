package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-hub/internal/model"
)

// EventRepo provides persistence for the events table. Capacity,
// price and the start/end time ordering are enforced by named check
// constraints; violations come back as the ErrInvalid* sentinels.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,user_id,event_name,description,event_type,address,price,capacity,date,start_time,end_time,picture,created_at"

// EventUpdate carries the optional fields of a partial event update.
// Nil pointers leave the corresponding columns untouched.
type EventUpdate struct {
	EventName   *string
	Description *string
	EventType   *string
	Address     *string
	Price       *float64
	Capacity    *int
	Date        *string
	StartTime   *string
	EndTime     *string
	Picture     *string
}

// Create inserts a new event owned by userID and returns the stored
// row. Constraint rejections are translated to domain errors.
func (r *EventRepo) Create(ctx context.Context, userID string, e model.Event) (model.Event, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO events (id, user_id, event_name, description, event_type, address, price, capacity, date, start_time, end_time, picture)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, userID, e.EventName, e.Description, e.EventType, e.Address,
		e.Price, e.Capacity, e.Date, e.StartTime, e.EndTime, e.Picture)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Event{}, sql.ErrNoRows
		}
		return model.Event{}, translateEventConstraint(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a single event.
func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	return scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id))
}

// GetAll returns a page of events ordered by date ascending. The
// caller supplies limit and offset; defaults live in the config
// package, not here.
func (r *EventRepo) GetAll(ctx context.Context, limit, offset int) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY date ASC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ListByOwner returns every event created by the given user.
func (r *EventRepo) ListByOwner(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE user_id=? ORDER BY date ASC", userID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ownerOf returns the owner id of an event, or sql.ErrNoRows when the
// event does not exist.
func (r *EventRepo) ownerOf(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM events WHERE id=? LIMIT 1", id).Scan(&owner)
	return owner, err
}

// Update applies the non-nil fields of upd to the event after
// verifying ownership. A missing event yields sql.ErrNoRows and an
// ownership mismatch yields ErrForbidden, so callers can report 404
// and 403 distinctly. An empty field set returns the current row.
func (r *EventRepo) Update(ctx context.Context, id, requesterID string, upd EventUpdate) (model.Event, error) {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if owner != requesterID {
		return model.Event{}, ErrForbidden
	}

	set := make([]string, 0, 10)
	args := make([]any, 0, 11)
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.EventName != nil {
		add("event_name", *upd.EventName)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.EventType != nil {
		add("event_type", *upd.EventType)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		add("end_time", *upd.EndTime)
	}
	if upd.Picture != nil {
		add("picture", *upd.Picture)
	}
	if len(set) > 0 {
		args = append(args, id)
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE events SET "+strings.Join(set, ", ")+" WHERE id=?", args...); err != nil {
			return model.Event{}, translateEventConstraint(err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an event after verifying ownership. Dependent
// bookings, reviews and favorites go with it through the cascade
// constraints; no application-level cleanup runs here.
func (r *EventRepo) Delete(ctx context.Context, id, requesterID string) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != requesterID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	return err
}

// scanEvent reads one event row. The DATE column arrives as time.Time
// from both drivers and is rendered back to its storage format; the
// TIME columns pass through as plain strings.
func scanEvent(row *sql.Row) (model.Event, error) {
	var e model.Event
	var eventType, picture sql.NullString
	var date time.Time
	err := row.Scan(&e.ID, &e.UserID, &e.EventName, &e.Description, &eventType,
		&e.Address, &e.Price, &e.Capacity, &date, &e.StartTime, &e.EndTime,
		&picture, &e.CreatedAt)
	if err != nil {
		return model.Event{}, err
	}
	e.Date = date.Format("2006-01-02")
	if eventType.Valid {
		t := eventType.String
		e.EventType = &t
	}
	if picture.Valid {
		p := picture.String
		e.Picture = &p
	}
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		var eventType, picture sql.NullString
		var date time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventName, &e.Description, &eventType,
			&e.Address, &e.Price, &e.Capacity, &date, &e.StartTime, &e.EndTime,
			&picture, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = date.Format("2006-01-02")
		if eventType.Valid {
			t := eventType.String
			e.EventType = &t
		}
		if picture.Valid {
			p := picture.String
			e.Picture = &p
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
