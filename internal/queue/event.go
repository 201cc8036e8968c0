// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully
// created. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name,omitempty"`
	EventDate string `json:"event_date,omitempty"`
	CreatedAt string `json:"created_at"`
}
