package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewEventRepo(db)

	in := validEvent("Concert", "2026-09-01")
	kind := "music"
	in.EventType = &kind

	ev, err := repo.Create(ctx, owner.ID, in)
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, owner.ID, ev.UserID)
	assert.Equal(t, "Concert", ev.EventName)
	assert.Equal(t, "2026-09-01", ev.Date)
	assert.Equal(t, "18:00:00", ev.StartTime)
	assert.Equal(t, "21:00:00", ev.EndTime)
	assert.Equal(t, 12.50, ev.Price)
	require.NotNil(t, ev.EventType)
	assert.Equal(t, "music", *ev.EventType)

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestEventCreateConstraintViolations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewEventRepo(db)

	bad := validEvent("Zero Cap", "2026-09-01")
	bad.Capacity = 0
	_, err := repo.Create(ctx, owner.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	bad = validEvent("Negative Price", "2026-09-01")
	bad.Price = -1
	_, err = repo.Create(ctx, owner.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	bad = validEvent("Backwards", "2026-09-01")
	bad.StartTime, bad.EndTime = "21:00:00", "18:00:00"
	_, err = repo.Create(ctx, owner.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// Zero-length events are rejected too: end must be strictly after start.
	bad = validEvent("Instant", "2026-09-01")
	bad.EndTime = bad.StartTime
	_, err = repo.Create(ctx, owner.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestEventCreateUnknownOwner(t *testing.T) {
	db := newTestDB(t)
	_, err := NewEventRepo(db).Create(context.Background(), "ghost", validEvent("Orphan", "2026-09-01"))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestEventGetAllPaginatesByDate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewEventRepo(db)

	seedEvent(t, db, owner.ID, "Third", "2026-09-03")
	seedEvent(t, db, owner.ID, "First", "2026-09-01")
	seedEvent(t, db, owner.ID, "Second", "2026-09-02")

	page, err := repo.GetAll(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "First", page[0].EventName)
	assert.Equal(t, "Second", page[1].EventName)

	page, err = repo.GetAll(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Third", page[0].EventName)
}

func TestEventListByOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	repo := NewEventRepo(db)

	seedEvent(t, db, a.ID, "Mine", "2026-09-01")
	seedEvent(t, db, b.ID, "Theirs", "2026-09-02")

	mine, err := repo.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].EventName)
}

func TestEventUpdateOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	repo := NewEventRepo(db)

	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	name := "Renamed"

	// A missing event and a foreign event fail differently.
	_, err := repo.Update(ctx, "no-such-id", owner.ID, EventUpdate{EventName: &name})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.Update(ctx, ev.ID, other.ID, EventUpdate{EventName: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := repo.Update(ctx, ev.ID, owner.ID, EventUpdate{EventName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.EventName)
}

func TestEventUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewEventRepo(db)

	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")

	price := 99.99
	got, err := repo.Update(ctx, ev.ID, owner.ID, EventUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 99.99, got.Price)
	assert.Equal(t, ev.EventName, got.EventName)
	assert.Equal(t, ev.Date, got.Date)
	assert.Equal(t, ev.Capacity, got.Capacity)

	// No fields set: current row comes back unchanged.
	same, err := repo.Update(ctx, ev.ID, owner.ID, EventUpdate{})
	require.NoError(t, err)
	assert.Equal(t, got, same)
}

func TestEventUpdateConstraintViolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewEventRepo(db)

	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")

	zero := 0
	_, err := repo.Update(ctx, ev.ID, owner.ID, EventUpdate{Capacity: &zero})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	// The rejected update left the row untouched.
	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.Capacity, got.Capacity)
}

func TestEventDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	attendee := seedUser(t, db, "attendee")
	repo := NewEventRepo(db)

	ev := seedEvent(t, db, owner.ID, "Concert", "2026-09-01")
	bookings := NewBookingRepo(db)
	_, err := bookings.Create(ctx, attendee.ID, ev.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, ev.ID, attendee.ID), ErrForbidden)
	assert.ErrorIs(t, repo.Delete(ctx, "no-such-id", owner.ID), sql.ErrNoRows)

	require.NoError(t, repo.Delete(ctx, ev.ID, owner.ID))
	_, err = repo.GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	booked, err := bookings.ListByUser(ctx, attendee.ID)
	require.NoError(t, err)
	assert.Empty(t, booked)
}
