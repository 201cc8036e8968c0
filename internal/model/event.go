package model

import "time"

// Event mirrors a row of the `events` table. Every event belongs to
// the user who created it; deleting that user (or the event itself)
// cascades to all dependent bookings, reviews and favorites at the
// database level.
//
// Date and the two time-of-day columns are carried as strings in
// their storage formats ("2006-01-02" and "15:04:05"). Handlers
// validate the formats before anything reaches the database; the
// database enforces end_time > start_time on its own.
//
// Fields:
//  ID          – UUID primary key of the event.
//  UserID      – UUID of the creating user (owner).
//  EventName   – human-readable title.
//  Description – long description text.
//  EventType   – optional category label (e.g. "Music").
//  Address     – venue address.
//  Price       – ticket price, non-negative with two decimals.
//  Capacity    – maximum attendance, strictly positive.
//  Date        – calendar date of the event.
//  StartTime   – time of day the event starts.
//  EndTime     – time of day the event ends (after StartTime).
//  Picture     – optional opaque picture reference.
//  CreatedAt   – timestamp of creation.
type Event struct {
	ID          string    `json:"id"`           // events.id
	UserID      string    `json:"user_id"`      // events.user_id
	EventName   string    `json:"event_name"`   // events.event_name
	Description string    `json:"description"`  // events.description
	EventType   *string   `json:"event_type"`   // events.event_type (nullable)
	Address     string    `json:"address"`      // events.address
	Price       float64   `json:"price"`        // events.price
	Capacity    int       `json:"capacity"`     // events.capacity
	Date        string    `json:"date"`         // events.date
	StartTime   string    `json:"start_time"`   // events.start_time
	EndTime     string    `json:"end_time"`     // events.end_time
	Picture     *string   `json:"picture"`      // events.picture (nullable)
	CreatedAt   time.Time `json:"created_at"`   // events.created_at
}
