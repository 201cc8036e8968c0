package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hub/internal/database"
	"github.com/iliyamo/event-hub/internal/model"
)

// testBcryptCost keeps password hashing fast in tests.
const testBcryptCost = 4

// newTestDB opens an in-memory SQLite database and applies the schema.
// A single connection keeps the in-memory database alive for the whole
// test; foreign keys are enabled so cascades behave like production.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func seedUser(t *testing.T, db *sql.DB, username string) model.User {
	t.Helper()
	u, err := NewUserRepo(db).Create(context.Background(),
		"Test User", username, "secret-pass", "Berlin", nil, testBcryptCost)
	require.NoError(t, err)
	return u
}

// validEvent returns an event fixture that satisfies every constraint.
func validEvent(name, date string) model.Event {
	return model.Event{
		EventName:   name,
		Description: "an event used by the test suite",
		Address:     "1 Test Street",
		Price:       12.50,
		Capacity:    100,
		Date:        date,
		StartTime:   "18:00:00",
		EndTime:     "21:00:00",
	}
}

func seedEvent(t *testing.T, db *sql.DB, ownerID, name, date string) model.Event {
	t.Helper()
	ev, err := NewEventRepo(db).Create(context.Background(), ownerID, validEvent(name, date))
	require.NoError(t, err)
	return ev
}
