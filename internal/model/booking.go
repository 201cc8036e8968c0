package model

import "time"

// Booking links a user to an event they plan to attend. The
// database enforces at most one booking per (user, event) pair via
// a composite unique constraint; a second attempt surfaces as a
// duplicate-booking error rather than a silent second row.
//
// Fields:
//  ID        – UUID primary key of the booking.
//  UserID    – UUID of the booking user.
//  EventID   – UUID of the booked event.
//  CreatedAt – timestamp of creation.
type Booking struct {
	ID        string    `json:"id"`         // bookings.id
	UserID    string    `json:"user_id"`    // bookings.user_id
	EventID   string    `json:"event_id"`   // bookings.event_id
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
}
