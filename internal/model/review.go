package model

import "time"

// Review is a rated, written opinion a user leaves on an event.
// Ratings are whole stars between 1 and 5, enforced by a check
// constraint. A user may review any given event once; edits go
// through the (user, event) pair rather than the row id.
//
// Fields:
//  ID         – UUID primary key of the review.
//  UserID     – UUID of the author.
//  EventID    – UUID of the reviewed event.
//  Rating     – integer rating in [1,5].
//  TextReview – free-text body.
//  CreatedAt  – timestamp of creation.
type Review struct {
	ID         string    `json:"id"`          // reviews.id
	UserID     string    `json:"user_id"`     // reviews.user_id
	EventID    string    `json:"event_id"`    // reviews.event_id
	Rating     int       `json:"rating"`      // reviews.rating
	TextReview string    `json:"text_review"` // reviews.text_review
	CreatedAt  time.Time `json:"created_at"`  // reviews.created_at
}
