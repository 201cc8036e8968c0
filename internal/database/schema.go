package database

import (
	"context"
	"database/sql"
)

// Schema holds the ordered DDL for the five application tables.
// Constraints are named so that the repository layer can translate a
// violation into the matching domain error. All referential cleanup is
// delegated to ON DELETE CASCADE; application code never deletes
// dependent rows itself.
//
// The statements avoid engine-specific syntax so the same schema runs
// against the in-memory SQLite database used by the test suite.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		username VARCHAR(255) NOT NULL,
		password_hash TEXT NOT NULL,
		location VARCHAR(255) NOT NULL,
		picture TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uniq_username UNIQUE (username)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		event_name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		event_type VARCHAR(50),
		address VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		capacity INT NOT NULL,
		date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		picture TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT chk_price CHECK (price >= 0),
		CONSTRAINT chk_capacity CHECK (capacity > 0),
		CONSTRAINT chk_time_range CHECK (end_time > start_time),
		CONSTRAINT fk_events_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		event_id CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uniq_booking UNIQUE (user_id, event_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_event FOREIGN KEY (event_id)
			REFERENCES events (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		event_id CHAR(36) NOT NULL,
		rating INT NOT NULL,
		text_review TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uniq_review UNIQUE (user_id, event_id),
		CONSTRAINT chk_rating CHECK (rating BETWEEN 1 AND 5),
		CONSTRAINT fk_reviews_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_reviews_event FOREIGN KEY (event_id)
			REFERENCES events (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		event_id CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uniq_favorite UNIQUE (user_id, event_id),
		CONSTRAINT fk_favorites_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_favorites_event FOREIGN KEY (event_id)
			REFERENCES events (id) ON DELETE CASCADE
	)`,
}

// Migrate applies the schema statements one at a time. Statements use
// IF NOT EXISTS so running Migrate against an existing database is a
// no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
