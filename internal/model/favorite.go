package model

import "time"

// Favorite marks an event a user wants to keep an eye on. Like
// bookings, the (user, event) pair is unique at the database level.
//
// Fields:
//  ID        – UUID primary key of the favorite.
//  UserID    – UUID of the owning user.
//  EventID   – UUID of the favorited event.
//  CreatedAt – timestamp of creation.
type Favorite struct {
	ID        string    `json:"id"`         // favorites.id
	UserID    string    `json:"user_id"`    // favorites.user_id
	EventID   string    `json:"event_id"`   // favorites.event_id
	CreatedAt time.Time `json:"created_at"` // favorites.created_at
}
