package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCreateListDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	attendee := seedUser(t, db, "attendee")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewBookingRepo(db)

	b, err := repo.Create(ctx, attendee.ID, ev.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, attendee.ID, b.UserID)
	assert.Equal(t, ev.ID, b.EventID)

	// Listing returns the booked event itself, not the booking row.
	booked, err := repo.ListByUser(ctx, attendee.ID)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, ev.ID, booked[0].ID)
	assert.Equal(t, "Concert", booked[0].EventName)

	require.NoError(t, repo.Delete(ctx, attendee.ID, ev.ID))
	booked, err = repo.ListByUser(ctx, attendee.ID)
	require.NoError(t, err)
	assert.Empty(t, booked)

	// Cancelling a booking that no longer exists is a pair-keyed miss.
	assert.ErrorIs(t, repo.Delete(ctx, attendee.ID, ev.ID), sql.ErrNoRows)
}

func TestBookingDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	attendee := seedUser(t, db, "attendee")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewBookingRepo(db)

	_, err := repo.Create(ctx, attendee.ID, ev.ID)
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendee.ID, ev.ID)
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	// Exactly one booking survives the duplicate attempt.
	booked, err := repo.ListByUser(ctx, attendee.ID)
	require.NoError(t, err)
	assert.Len(t, booked, 1)

	// A different user may still book the same event.
	_, err = repo.Create(ctx, owner.ID, ev.ID)
	assert.NoError(t, err)
}

func TestBookingUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	attendee := seedUser(t, db, "attendee")

	_, err := NewBookingRepo(db).Create(context.Background(), attendee.ID, "no-such-event")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBookingDeleteOnlyOwnPair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	repo := NewBookingRepo(db)

	_, err := repo.Create(ctx, a.ID, ev.ID)
	require.NoError(t, err)

	// User b has no booking for this event, so the delete misses even
	// though the event is booked by someone else.
	assert.ErrorIs(t, repo.Delete(ctx, b.ID, ev.ID), sql.ErrNoRows)

	booked, err := repo.ListByUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, booked, 1)
}
